package services

import "log"

// CodeSender delivers a verification code over an out-of-band medium (SMS,
// postal mail). Implementations are collaborator stubs until a provider is
// wired up; the orchestrator only needs send-and-log semantics.
type CodeSender interface {
	Send(destination, code string) error
}

type LogSMSSender struct{}

func (LogSMSSender) Send(destination, code string) error {
	log.Printf("sms to %s: verification code %s", destination, code)
	return nil
}

type LogMailSender struct{}

func (LogMailSender) Send(destination, code string) error {
	log.Printf("postcard to %q: verification code %s", destination, code)
	return nil
}
