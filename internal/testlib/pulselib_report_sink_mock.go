package testlib

import (
	"github.com/pipepulse/pipepulse/pulselib"
	"github.com/stretchr/testify/mock"
)

type PulselibReportSinkMock struct {
	mock.Mock
}

func (m *PulselibReportSinkMock) Report(evt pulselib.ReportEvent) error {
	return m.Called(evt).Error(0) //nolint: wrapcheck
}
