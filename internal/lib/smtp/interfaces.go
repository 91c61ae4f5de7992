// Package smtp отправляет письма с кодом активации через SMTP-релей.
package smtp

import "io"

// Session открытая SMTP-сессия для отправки одного письма.
type Session interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Dialer открывает сессии с релеем от имени адреса отправителя.
type Dialer interface {
	Dial() (Session, error)
	From() string
}
