package core

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTransport struct {
	delivered []*Envelope
	err       error
}

func (f *fakeTransport) Deliver(_ context.Context, env *Envelope) error {
	if f.err != nil {
		return f.err
	}
	f.delivered = append(f.delivered, env)
	return nil
}

func (f *fakeTransport) Name() string {
	return "fake"
}

func newTestService(transport Transport) *EchoService {
	return NewEchoService(
		transport,
		zap.NewNop(),
		"MailEcho",
		"Your message has been received and is quoted in full below.",
		"This is an automated reply; no mailbox is attached to this address.",
	)
}

func mustParse(t *testing.T, raw string) *ParsedMessage {
	t.Helper()
	parsed, err := Parse([]byte(raw))
	require.NoError(t, err)
	return parsed
}

func TestComposeSwapsAddresses(t *testing.T) {
	service := newTestService(&fakeTransport{})
	parsed := mustParse(t, sampleMessage)

	reply := service.Compose(parsed)

	assert.Equal(t, "bob@example.com", reply.From)
	assert.Equal(t, "alice@example.com", reply.To)
}

func TestComposeSubject(t *testing.T) {
	service := newTestService(&fakeTransport{})
	parsed := mustParse(t, sampleMessage)

	reply := service.Compose(parsed)

	assert.Equal(t, "MailEcho Reply to alice@example.com", reply.Subject)
}

func TestComposeDate(t *testing.T) {
	service := newTestService(&fakeTransport{})
	parsed := mustParse(t, sampleMessage)

	reply := service.Compose(parsed)

	parsedDate, err := time.Parse(time.RFC1123Z, reply.Date)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsedDate, time.Minute)
}

func TestComposeMessageIDFormat(t *testing.T) {
	service := newTestService(&fakeTransport{})
	parsed := mustParse(t, sampleMessage)

	reply := service.Compose(parsed)

	assert.Regexp(t, regexp.MustCompile(`^<mailecho\.\d+@.+>$`), reply.MessageID)
}

func TestComposeInReplyTo(t *testing.T) {
	service := newTestService(&fakeTransport{})

	t.Run("original message id propagated", func(t *testing.T) {
		reply := service.Compose(mustParse(t, sampleMessage))

		assert.Equal(t, "<orig.123@mail.example.com>", reply.InReplyTo)
		assert.Contains(t, string(reply.WireFormat()), "In-Reply-To: <orig.123@mail.example.com>\r\n")
	})

	t.Run("omitted when original has none", func(t *testing.T) {
		raw := "From: alice@example.com\r\n" +
			"To: bob@example.com\r\n" +
			"\r\n" +
			"body\r\n"
		reply := service.Compose(mustParse(t, raw))

		assert.Empty(t, reply.InReplyTo)
		assert.NotContains(t, string(reply.WireFormat()), "In-Reply-To:")
	})
}

func TestComposeBodyRoundTrip(t *testing.T) {
	service := newTestService(&fakeTransport{})
	parsed := mustParse(t, sampleMessage)

	reply := service.Compose(parsed)

	parts := strings.Split(reply.Body, BodySeparator)
	require.Len(t, parts, 3)
	assert.Equal(t, "Your message has been received and is quoted in full below.", parts[0])
	assert.Equal(t, sampleMessage, parts[1])
	assert.Equal(t, "This is an automated reply; no mailbox is attached to this address.", parts[2])
}

func TestProcessDeliversEnvelope(t *testing.T) {
	transport := &fakeTransport{}
	service := newTestService(transport)

	result, err := service.Process(context.Background(), []byte(sampleMessage))
	require.NoError(t, err)
	require.Len(t, transport.delivered, 1)

	env := transport.delivered[0]
	assert.Equal(t, "bob@example.com", env.From)
	assert.Equal(t, "alice@example.com", env.To)
	assert.Equal(t, env.To, result.Recipient)
	assert.Equal(t, result.MessageID, extractHeader(t, env.Data, "Message-Id"))

	wire := string(env.Data)
	assert.Contains(t, wire, "From: bob@example.com\r\n")
	assert.Contains(t, wire, "To: alice@example.com\r\n")
	assert.Contains(t, wire, "Subject: MailEcho Reply to alice@example.com\r\n")

	// The quoted original, headers included, is nested inside the body.
	assert.Contains(t, wire, "From: alice@example.com\r\n")
	assert.Contains(t, wire, "To: bob@example.com\r\n")
	assert.Contains(t, wire, "Just checking in.")
}

func TestProcessValidationFailureSkipsDelivery(t *testing.T) {
	transport := &fakeTransport{}
	service := newTestService(transport)

	raw := "From: alice@example.com\r\n\r\nbody\r\n"
	result, err := service.Process(context.Background(), []byte(raw))

	var missingErr *MissingHeaderError
	require.ErrorAs(t, err, &missingErr)
	assert.Nil(t, result)
	assert.Empty(t, transport.delivered)
}

func TestProcessLoopSkipsDelivery(t *testing.T) {
	transport := &fakeTransport{}
	service := newTestService(transport)

	raw := "From: alice@example.com\r\n" +
		"To: bob@example.com\r\n" +
		"In-Reply-To: <mailecho.1700000000@mail.example.com>\r\n" +
		"\r\n" +
		"body\r\n"
	result, err := service.Process(context.Background(), []byte(raw))

	var loopErr *LoopDetectedError
	require.ErrorAs(t, err, &loopErr)
	assert.Nil(t, result)
	assert.Empty(t, transport.delivered)
}

func TestProcessTransportFailure(t *testing.T) {
	transport := &fakeTransport{err: &TransportError{Stage: "rcpt", Err: assert.AnError}}
	service := newTestService(transport)

	result, err := service.Process(context.Background(), []byte(sampleMessage))

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "rcpt", transportErr.Stage)
	assert.Nil(t, result)
}

func extractHeader(t *testing.T, wire []byte, name string) string {
	t.Helper()
	for _, line := range strings.Split(string(wire), "\r\n") {
		if value, ok := strings.CutPrefix(line, name+": "); ok {
			return value
		}
	}
	t.Fatalf("header %s not found", name)
	return ""
}
