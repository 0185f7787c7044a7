package insight

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractContact_FindsEmailsInMarkup(t *testing.T) {
	t.Parallel()

	raw := []byte(`<html><body>
		<p>Reach us at support@acme.com</p>
		<script>var fallback = "help@acme.co.in";</script>
	</body></html>`)

	contact := ExtractContact(raw)
	require.Equal(t, []string{"help@acme.co.in", "support@acme.com"}, contact.Emails)
}

func TestExtractContact_FindsIndianMobileNumbers(t *testing.T) {
	t.Parallel()

	raw := []byte(`Call +91-9876543210 or 8123456789. Landline 0112345678 is ignored.`)

	contact := ExtractContact(raw)
	require.Equal(t, []string{"+91-9876543210", "8123456789"}, contact.Phones)
}

func TestExtractContact_Deduplicates(t *testing.T) {
	t.Parallel()

	raw := []byte(`a@x.com a@x.com 9876543210 9876543210`)

	contact := ExtractContact(raw)
	require.Equal(t, []string{"a@x.com"}, contact.Emails)
	require.Equal(t, []string{"9876543210"}, contact.Phones)
}

func TestExtractContact_EmptyPage(t *testing.T) {
	t.Parallel()

	contact := ExtractContact([]byte("<html><body></body></html>"))
	require.Empty(t, contact.Emails)
	require.Empty(t, contact.Phones)
}
