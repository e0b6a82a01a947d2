package search

import (
	"context"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netboxbot/clients/netbox"
	"netboxbot/models"
	"netboxbot/services/formatter"
)

// newNetBoxBackedUseCase wires a real NetBox client to a TLS test server
func newNetBoxBackedUseCase(t *testing.T, status int, body string) *SearchUseCase {
	t.Helper()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	caPath := filepath.Join(t.TempDir(), "ca.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
	require.NoError(t, os.WriteFile(caPath, pemBytes, 0o600))

	client, err := netbox.NewNetBoxClient(server.URL+"/api/", "token", caPath)
	require.NoError(t, err)
	return NewSearchUseCase(client, formatter.NewFormatter())
}

func TestSearchUseCase_MalformedNetBoxResponseIsNothingFound(t *testing.T) {
	bodies := map[string]string{
		"List instead of object": `[]`,
		"Missing results key":    `{"count":0}`,
		"Empty body":             ``,
		"Results is not a list":  `{"results":"x"}`,
		"Not JSON":               `<html>maintenance</html>`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			useCase := newNetBoxBackedUseCase(t, http.StatusOK, body)

			reply := useCase.HandleMessage(context.Background(), "/search_racks r1")

			assert.Equal(t, models.PlainReply(formatter.NothingFoundMessage), reply)
		})
	}
}

func TestSearchUseCase_NetBoxStatusErrorIsFailure(t *testing.T) {
	useCase := newNetBoxBackedUseCase(t, http.StatusBadGateway, `{"detail":"upstream"}`)

	reply := useCase.HandleMessage(context.Background(), "/search_racks r1")

	assert.Equal(t, models.PlainReply("An error occurred while searching for racks."), reply)
}

func TestSearchUseCase_NetBoxResultsAreFormatted(t *testing.T) {
	useCase := newNetBoxBackedUseCase(t, http.StatusOK, `{"count":1,"results":[{"name":"rack-01","description":"Row A"}]}`)

	reply := useCase.HandleMessage(context.Background(), "/search_racks rack")

	assert.Equal(t, models.MarkdownReply("Found racks:\n\n🔹 *rack\\-01*\n  \\- *Description*: Row A"), reply)
}
