package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// 全局logger，基于logrus
var log = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return l
}()

// SetLevel 设置日志级别，非法的level回退到info
func SetLevel(level string) {
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	log.SetLevel(lv)
}

// WithFields 携带结构化字段
func WithFields(fields map[string]any) *logrus.Entry {
	return log.WithFields(fields)
}

func Debug(args ...any) {
	log.Debug(args...)
}

func Info(args ...any) {
	log.Info(args...)
}

func Warn(args ...any) {
	log.Warn(args...)
}

func Error(args ...any) {
	log.Error(args...)
}

func Fatal(args ...any) {
	log.Fatal(args...)
}
