// Package notifier delivers failure messages to the operator. Email is the
// primary channel; Telegram is an optional secondary one. Every channel caps
// the message body at BodyLimit characters.
package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/argosbackup/argos/internal/domain"
)

const BodyLimit = 300

// Truncate cuts messages longer than BodyLimit to exactly the first BodyLimit
// characters plus a fixed notice naming the limit. Shorter messages pass
// through unmodified. The cut counts runes, never splitting a multi-byte
// character.
func Truncate(message string) string {
	runes := []rune(message)
	if len(runes) <= BodyLimit {
		return message
	}
	return string(runes[:BodyLimit]) + fmt.Sprintf(" [message truncated, original exceeded %d characters]", BodyLimit)
}

// Composite fans a notification out to every configured channel and joins
// their errors. Callers treat a send failure as log-worthy, never fatal.
type Composite struct {
	channels []domain.Notifier
}

func NewComposite(channels ...domain.Notifier) *Composite {
	return &Composite{channels: channels}
}

func (c *Composite) Notify(ctx context.Context, message string) error {
	var errs []error
	for _, ch := range c.channels {
		if err := ch.Notify(ctx, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
