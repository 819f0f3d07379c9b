package email

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	mail "github.com/go-mail/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAlert(t *testing.T) {
	subject, html, text, err := RenderAlert(AlertVars{
		Total: 1,
		Items: []AlertItem{{ApartmentID: "65a000000000000000000001", Number: "a<1>", PendingCount: 3}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.Contains(t, html, "a&lt;1&gt;")
	assert.Contains(t, text, "a<1> (65a000000000000000000001): 3 pendientes")
}

func TestSMTPSender_BuildsMessage(t *testing.T) {
	s := NewSMTPSender(Config{Host: "smtp.example.com", From: "noreply@example.com", TLSMode: "ssl"})
	var sent *mail.Message
	var dialer *mail.Dialer
	s.dial = func(d *mail.Dialer, m ...*mail.Message) error {
		dialer, sent = d, m[0]
		return nil
	}

	err := s.Send(context.Background(), []string{"ops@example.com", "admin@example.com"}, "Hola", "<b>hola</b>", "hola")
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, []string{"ops@example.com", "admin@example.com"}, sent.GetHeader("To"))
	assert.True(t, dialer.SSL)
	assert.Equal(t, 587, dialer.Port)

	var buf bytes.Buffer
	_, err = sent.WriteTo(&buf)
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "multipart/alternative"))
}

func TestSMTPSender_Errors(t *testing.T) {
	s := NewSMTPSender(Config{Host: "smtp.example.com"})
	assert.Error(t, s.Send(context.Background(), nil, "x", "", "x"))

	s.dial = func(*mail.Dialer, ...*mail.Message) error { return errors.New("refused") }
	assert.Error(t, s.Send(context.Background(), []string{"a@example.com"}, "x", "", "x"))
}
