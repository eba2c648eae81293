package transfer

import (
	"bytes"
	"testing"
)

type readStep struct {
	data []byte
	err  error
}

// scriptedInput отдаёт данные по шагам; после последнего шага: EOF.
type scriptedInput struct {
	steps []readStep
	calls int
}

func (s *scriptedInput) read(_ int, p []byte) (int, error) {
	s.calls++

	if len(s.steps) == 0 {
		return 0, nil
	}

	step := &s.steps[0]
	if step.err != nil {
		err := step.err
		s.steps = s.steps[1:]

		return -1, err
	}

	n := copy(p, step.data)
	step.data = step.data[n:]

	if len(step.data) == 0 {
		s.steps = s.steps[1:]
	}

	return n, nil
}

// scriptedOutput сначала возвращает ошибки из errs (nil: обычная
// запись), затем принимает всё. limit ограничивает размер одной записи.
type scriptedOutput struct {
	buf   bytes.Buffer
	errs  []error
	limit int
	calls int
}

func (s *scriptedOutput) write(_ int, p []byte) (int, error) {
	s.calls++

	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]

		if err != nil {
			return -1, err
		}
	}

	if s.limit > 0 && len(p) > s.limit {
		p = p[:s.limit]
	}

	s.buf.Write(p)

	return len(p), nil
}

func newScriptedBuffered(windowSize int, in *scriptedInput, out *scriptedOutput) *Buffered {
	buffered := NewBuffered(0, 1, windowSize)
	buffered.read = in.read
	buffered.write = out.write

	return buffered
}

type stepper interface {
	Step() Result
}

type strategyStepper struct {
	Strategy
}

func (s strategyStepper) Step() Result {
	return s.Transfer()
}

// drain крутит попытки до терминального результата и возвращает сумму
// переданных байт.
func drain(t *testing.T, s stepper) (int, Result) {
	t.Helper()

	total := 0

	for i := 0; i < 10000; i++ {
		res := s.Step()
		total += res.N

		if res.Terminal() {
			return total, res
		}
	}

	t.Fatal("transfer has not finished")

	return total, Result{}
}

func makePayload(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i*7 + i/251)
	}

	return data
}
