package mail

import "errors"

// ErrClosed is returned by AsyncMailer.Send after Close.
var ErrClosed = errors.New("mailer is closed")
