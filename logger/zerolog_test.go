package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pipepulse/pipepulse/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type ZeroLoggerTestSuite struct {
	suite.Suite

	buf *bytes.Buffer
}

func (suite *ZeroLoggerTestSuite) SetupTest() {
	suite.buf = &bytes.Buffer{}
}

func (suite *ZeroLoggerTestSuite) record() map[string]interface{} {
	data := map[string]interface{}{}

	suite.NoError(json.Unmarshal(suite.buf.Bytes(), &data))

	return data
}

func (suite *ZeroLoggerTestSuite) TestNamedAndBound() {
	log := logger.NewZeroLogger(zerolog.New(suite.buf)).
		Named("pulse").
		Named("reporter").
		BindStr("stream-id", "xxx").
		BindInt("total", 42)

	log.Info("hello")

	data := suite.record()

	suite.Equal("pulse.reporter", data["logger"])
	suite.Equal("xxx", data["stream-id"])
	suite.EqualValues(42, data["total"])
	suite.Equal("info", data["level"])
	suite.Equal("hello", data["message"])
}

func (suite *ZeroLoggerTestSuite) TestError() {
	log := logger.NewZeroLogger(zerolog.New(suite.buf))

	log.WarningError("report has failed", errors.New("disk full"))

	data := suite.record()

	suite.Equal("warn", data["level"])
	suite.Equal("disk full", data["error"])
}

func (suite *ZeroLoggerTestSuite) TestLevelFilter() {
	log := logger.NewZeroLogger(zerolog.New(suite.buf).Level(zerolog.InfoLevel))

	log.Debug("hidden")
	log.Printf("hidden %d", 1)

	suite.Empty(suite.buf.Bytes())
}

func (suite *ZeroLoggerTestSuite) TestNoop() {
	log := logger.NewNoopLogger().Named("x").BindStr("a", "b").BindInt("c", 1)

	suite.NotPanics(func() {
		log.Info("msg")
		log.WarningError("msg", errors.New("err"))
	})
}

func TestZeroLogger(t *testing.T) {
	t.Parallel()
	suite.Run(t, &ZeroLoggerTestSuite{})
}
