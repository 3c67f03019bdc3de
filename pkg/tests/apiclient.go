// Package tests helpers for end-to-end HTTP tests.
package tests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// APIClient JSON-клиент к тестовому серверу.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	headers    http.Header
}

func NewAPIClient(
	baseURL string,
	httpClient *http.Client,
) APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return APIClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		headers:    http.Header{},
	}
}

// WithBearer возвращает копию клиента, подписывающую запросы токеном.
func (a APIClient) WithBearer(token string) APIClient {
	headers := a.headers.Clone()
	headers.Set("Authorization", "Bearer "+token)
	a.headers = headers

	return a
}

func (a APIClient) Get(ctx context.Context, endpoint string, dest, errDest any) (*http.Response, error) {
	return a.httpRequest(ctx, http.MethodGet, endpoint, http.NoBody, dest, errDest)
}

func (a APIClient) Post(ctx context.Context, endpoint string, request, dest, errDest any) (*http.Response, error) {
	return a.withBody(ctx, http.MethodPost, endpoint, request, dest, errDest)
}

// PostJSON отправляет тело как есть, без сериализации.
func (a APIClient) PostJSON(
	ctx context.Context,
	endpoint string,
	requestJSON string,
	dest any,
	errDest any,
) (*http.Response, error) {
	return a.httpRequest(ctx, http.MethodPost, endpoint, bytes.NewReader([]byte(requestJSON)), dest, errDest)
}

func (a APIClient) Patch(ctx context.Context, endpoint string, request, dest, errDest any) (*http.Response, error) {
	return a.withBody(ctx, http.MethodPatch, endpoint, request, dest, errDest)
}

func (a APIClient) Delete(ctx context.Context, endpoint string, dest, errDest any) (*http.Response, error) {
	return a.httpRequest(ctx, http.MethodDelete, endpoint, http.NoBody, dest, errDest)
}

func (a APIClient) withBody(
	ctx context.Context,
	httpMethod string,
	endpoint string,
	request any,
	dest any,
	errDest any,
) (*http.Response, error) {
	if request == nil {
		return a.httpRequest(ctx, httpMethod, endpoint, http.NoBody, dest, errDest)
	}

	b, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return a.httpRequest(ctx, httpMethod, endpoint, bytes.NewReader(b), dest, errDest)
}

func (a APIClient) httpRequest(
	ctx context.Context,
	httpMethod string,
	endpoint string,
	payload io.Reader,
	dest any,
	errDest any,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, httpMethod, a.baseURL+endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	for k, v := range a.headers {
		req.Header[k] = v
	}

	if payload != http.NoBody {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Printf("Request:  %s %s", req.Method, req.URL)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if raw, err := httputil.DumpResponse(resp, true); err == nil {
		log.Println("Response:", string(raw))
	}

	if err = parseResponse(resp, dest, errDest); err != nil {
		return nil, fmt.Errorf("parseResponse: %w", err)
	}

	return resp, nil
}

func parseResponse(r *http.Response, dest, errDest any) error {
	if r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices && dest != nil {
		if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
			return fmt.Errorf("json.Decode(success destination): %w", err)
		}
	} else if errDest != nil {
		if err := json.NewDecoder(r.Body).Decode(errDest); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("json.Decode(err destination): %w", err)
		}
	}

	return nil
}
