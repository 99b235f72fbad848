package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailerConfigured(t *testing.T) {
	assert.False(t, (&Mailer{}).Configured())
	assert.False(t, (&Mailer{Username: "tracker@yathra.lk"}).Configured())
	assert.True(t, (&Mailer{Username: "tracker@yathra.lk", Password: "hunter2"}).Configured())
}

func TestMailerSendUnconfigured(t *testing.T) {
	mailer := &Mailer{Host: "smtp.example.com", Port: 587}

	assert.False(t, mailer.Send("passenger@example.com", "Test", "body", ""))
}

func TestBuildMessagePlain(t *testing.T) {
	message := string(buildMessage("tracker@yathra.lk", "passenger@example.com", "Arrived at Kadawatha", "You have arrived.", ""))

	assert.Contains(t, message, "From: tracker@yathra.lk\r\n")
	assert.Contains(t, message, "To: passenger@example.com\r\n")
	assert.Contains(t, message, "Subject: Arrived at Kadawatha\r\n")
	assert.Contains(t, message, "Content-Type: text/plain")
	assert.Contains(t, message, "You have arrived.")
	assert.NotContains(t, message, mimeBoundary)
}

func TestBuildMessageMultipart(t *testing.T) {
	message := string(buildMessage("tracker@yathra.lk", "passenger@example.com", "Update", "plain body", "<p>html body</p>"))

	assert.Contains(t, message, "Content-Type: multipart/alternative; boundary="+mimeBoundary)
	assert.Contains(t, message, "plain body")
	assert.Contains(t, message, "<p>html body</p>")
	assert.Contains(t, message, "--"+mimeBoundary+"--\r\n")
}
