package obs

import "github.com/manifestry/regmanifest/internal/log"

// LogChannel is a Channel backed by the structured logger in
// internal/log. Warnings and errors are logged via ErrorErr/Warn so the
// underlying error always lands in the log line.
type LogChannel struct {
	Category log.Category
}

// NewLogChannel returns a Channel that logs under the given category.
func NewLogChannel(cat log.Category) LogChannel {
	return LogChannel{Category: cat}
}

func (c LogChannel) Info(msg string, fields ...any) {
	log.Info(c.Category, msg, fields...)
}

func (c LogChannel) Warning(msg string, err error, fields ...any) {
	if err != nil {
		log.ErrorErr(c.Category, msg, err, fields...)
		return
	}
	log.Warn(c.Category, msg, fields...)
}

func (c LogChannel) Error(msg string, err error, fields ...any) {
	log.ErrorErr(c.Category, msg, err, fields...)
}
