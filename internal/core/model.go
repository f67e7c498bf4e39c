package core

import (
	"bytes"
	"fmt"

	"github.com/emersion/go-message"
)

// ServiceToken identifies this service inside generated Message-Id values.
// Inbound messages whose In-Reply-To contains this token are treated as
// replies to our own output and dropped to break mail loops.
const ServiceToken = "mailecho"

// BodySeparator frames the quoted original inside a reply body. The same
// sequence appears on both sides of the quote so a reader can locate it.
const BodySeparator = "\n" + separatorRule + "\n\n"

const separatorRule = "************************************************************************"

// ParsedMessage represents an inbound email after parsing. The original
// wire bytes are retained so the quoted reply reproduces them verbatim.
type ParsedMessage struct {
	Header message.Header
	Body   string

	raw []byte
}

// WireText returns the original message exactly as it was received.
func (m *ParsedMessage) WireText() string {
	return string(m.raw)
}

func (m *ParsedMessage) From() string {
	return m.Header.Get("From")
}

func (m *ParsedMessage) To() string {
	return m.Header.Get("To")
}

func (m *ParsedMessage) Subject() string {
	return m.Header.Get("Subject")
}

func (m *ParsedMessage) MessageID() string {
	return m.Header.Get("Message-Id")
}

func (m *ParsedMessage) InReplyTo() string {
	return m.Header.Get("In-Reply-To")
}

// ReplyMessage is the outbound auto-reply built from a ParsedMessage.
type ReplyMessage struct {
	From      string
	To        string
	Subject   string
	Date      string
	MessageID string
	InReplyTo string
	Body      string
}

// WireFormat serializes the reply. Headers are written by hand rather than
// through a MIME writer so the quoted original inside Body stays byte-exact.
func (r *ReplyMessage) WireFormat() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", r.From)
	fmt.Fprintf(&buf, "To: %s\r\n", r.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", r.Subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", r.Date)
	fmt.Fprintf(&buf, "Message-Id: %s\r\n", r.MessageID)
	if r.InReplyTo != "" {
		fmt.Fprintf(&buf, "In-Reply-To: %s\r\n", r.InReplyTo)
	}
	fmt.Fprintf(&buf, "Auto-Submitted: auto-replied\r\n")
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n")
	fmt.Fprintf(&buf, "\r\n")
	buf.WriteString(r.Body)

	return buf.Bytes()
}

// Envelope carries the SMTP-level sender, recipient and message data.
type Envelope struct {
	From string
	To   string
	Data []byte
}

// DispatchResult describes a completed delivery attempt.
type DispatchResult struct {
	MessageID string
	Recipient string
	Transport string
}
