//go:build debug

package debug

import "go.uber.org/zap"

var logger = newLogger()

func newLogger() *zap.SugaredLogger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return l.Sugar().Named("jsvalue")
}

func Printf(msg string, args ...any) {
	logger.Debugf(msg, args...)
}

const On = true
