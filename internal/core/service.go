package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// EchoService is the core service: it parses one inbound message, composes
// the quoting auto-reply and hands it to the configured transport.
type EchoService struct {
	transport   Transport
	logger      *zap.Logger
	serviceName string
	bodyHeader  string
	bodyFooter  string
}

// NewEchoService creates a new echo service
func NewEchoService(
	transport Transport,
	logger *zap.Logger,
	serviceName string,
	bodyHeader string,
	bodyFooter string,
) *EchoService {
	return &EchoService{
		transport:   transport,
		logger:      logger,
		serviceName: serviceName,
		bodyHeader:  bodyHeader,
		bodyFooter:  bodyFooter,
	}
}

// Compose builds the reply for a parsed message. The original sender and
// recipient swap roles, and the full original wire text is embedded between
// two identical separators.
func (s *EchoService) Compose(parsed *ParsedMessage) *ReplyMessage {
	now := time.Now()

	reply := &ReplyMessage{
		From:      parsed.To(),
		To:        parsed.From(),
		Subject:   fmt.Sprintf("%s Reply to %s", s.serviceName, parsed.From()),
		Date:      now.Format(time.RFC1123Z),
		MessageID: fmt.Sprintf("<%s.%d@%s>", ServiceToken, now.Unix(), localHostname()),
		InReplyTo: parsed.MessageID(),
		Body:      s.bodyHeader + BodySeparator + parsed.WireText() + BodySeparator + s.bodyFooter,
	}

	return reply
}

// Process runs the full parse, compose and deliver sequence for one raw
// message. Every failure is returned to the caller; only the entry point
// decides the process exit status.
func (s *EchoService) Process(ctx context.Context, raw []byte) (*DispatchResult, error) {
	parsed, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Parsed inbound message",
		zap.String("from", parsed.From()),
		zap.String("to", parsed.To()),
		zap.String("subject", parsed.Subject()),
		zap.String("body", parsed.Body))

	reply := s.Compose(parsed)

	env := &Envelope{
		From: reply.From,
		To:   reply.To,
		Data: reply.WireFormat(),
	}
	if err := s.transport.Deliver(ctx, env); err != nil {
		return nil, err
	}

	s.logger.Info("Reply dispatched",
		zap.String("message_id", reply.MessageID),
		zap.String("recipient", reply.To),
		zap.String("transport", s.transport.Name()))

	return &DispatchResult{
		MessageID: reply.MessageID,
		Recipient: reply.To,
		Transport: s.transport.Name(),
	}, nil
}

// localHostname returns the best available hostname for Message-Id values
func localHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	return hostname
}
