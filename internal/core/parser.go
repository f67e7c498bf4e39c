package core

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
)

// requiredHeaders must all be present before a reply is attempted.
var requiredHeaders = []string{"From", "To"}

// Parse turns raw message bytes into a ParsedMessage. It fails with a
// *MissingHeaderError when a required header is absent and with a
// *LoopDetectedError when the message answers one of our own replies.
func Parse(raw []byte) (*ParsedMessage, error) {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	for _, name := range requiredHeaders {
		if !entity.Header.Has(name) {
			return nil, &MissingHeaderError{Header: name}
		}
	}

	// Heuristic loop check: any In-Reply-To value containing our token is
	// treated as a reply to a message we generated, including a foreign
	// Message-Id that merely happens to contain the token.
	if inReplyTo := entity.Header.Get("In-Reply-To"); strings.Contains(inReplyTo, ServiceToken) {
		return nil, &LoopDetectedError{InReplyTo: inReplyTo}
	}

	body, err := io.ReadAll(entity.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}

	return &ParsedMessage{
		Header: entity.Header,
		Body:   string(body),
		raw:    raw,
	}, nil
}
