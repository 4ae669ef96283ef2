package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	convomem "github.com/custodia-labs/serchad/internal/adapters/driven/conversation/memory"
	indexmem "github.com/custodia-labs/serchad/internal/adapters/driven/index/memory"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
	"github.com/custodia-labs/serchad/internal/core/services"
	"github.com/custodia-labs/serchad/internal/normalisers"
	"github.com/custodia-labs/serchad/internal/normalisers/plaintext"
	"github.com/custodia-labs/serchad/internal/postprocessors"
	"github.com/custodia-labs/serchad/internal/postprocessors/chunker"
	"github.com/custodia-labs/serchad/internal/postprocessors/keywords"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 4)
	for _, kw := range keywords.Extract(text) {
		vec[len(kw)%4]++
	}
	if vec[0] == 0 && vec[1] == 0 && vec[2] == 0 && vec[3] == 0 {
		vec[0] = 1
	}
	return vec, nil
}

func (s stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := s.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (stubEmbedder) Dimensions() int            { return 4 }
func (stubEmbedder) ModelName() string          { return "stub" }
func (stubEmbedder) Ping(context.Context) error { return nil }
func (stubEmbedder) Close() error               { return nil }

type stubLLM struct{}

func (stubLLM) ID() string { return "stub" }
func (stubLLM) Chat(_ context.Context, _ string, _ []driven.ChatMessage, user string, _ driven.ChatOptions) (string, error) {
	return "stub answer for " + user, nil
}
func (stubLLM) ModelName() string          { return "stub-model" }
func (stubLLM) Ping(context.Context) error { return nil }
func (stubLLM) Close() error               { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := normalisers.NewRegistry()
	reg.Register(plaintext.New())
	pipeline := postprocessors.NewPipeline(chunker.New(chunker.WithChunkSize(200), chunker.WithOverlap(40)), keywords.New())
	embedder := services.NewEmbedderGateway(stubEmbedder{}, 4)
	idx := indexmem.New()
	ingestor := services.NewIngestor(reg, nil, pipeline, embedder, idx)

	llm := services.NewLLMGateway(stubLLM{})
	llm.Resolve(context.Background())

	convos := convomem.New()
	router := services.NewRouter(idx, embedder, llm, convos, services.DefaultRouterConfig())

	engine := NewRouter(Deps{Ingestor: ingestor, Router: router, LLM: llm, Convos: convos})
	return httptest.NewServer(engine)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestChat_EmptyCorpusGeneral(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	payload, _ := json.Marshal(map[string]any{"message": "hello there", "mode": "auto"})
	resp, err := http.Post(srv.URL+"/api/chat", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "general", body["mode"])
}

func TestDocumentsUploadAndList(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("files", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Gophers are small mammals that burrow tunnels underground."))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/documents/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var uploadBody map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploadBody))
	assert.EqualValues(t, 1, uploadBody["processed"])

	listResp, err := http.Get(srv.URL + "/api/documents")
	require.NoError(t, err)
	defer listResp.Body.Close()
	assert.Equal(t, http.StatusOK, listResp.StatusCode)
}

func TestModelsSet_UnknownProvider(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	payload, _ := json.Marshal(map[string]any{"model": "nonexistent"})
	resp, err := http.Post(srv.URL+"/api/models/set", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
