package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/hospital-dashboard/internal/model"
	"github.com/jwalitptl/hospital-dashboard/pkg/metrics"
)

// Config configures the hospital API client.
type Config struct {
	BaseURL string
	Timeout time.Duration // zero means no timeout
}

// Client talks to the hospital REST API. Requests carry no authentication
// and are never retried.
type Client struct {
	http    *resty.Client
	log     zerolog.Logger
	metrics *metrics.Metrics

	Personnels *Resource[model.Personnel]
	Patients   *Resource[model.Patient]
	Batiments  *Resource[model.Batiment]
	Services   *Resource[model.Service]
	Sections   *Resource[model.Section]
}

// New creates a client for the API rooted at cfg.BaseURL (for example
// http://localhost:8080/api).
func New(cfg Config, logger zerolog.Logger, m *metrics.Metrics) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	c := &Client{
		http:    httpClient,
		log:     logger.With().Str("component", "apiclient").Logger(),
		metrics: m,
	}

	c.Personnels = newResource[model.Personnel](c, "personnels", Paths{
		List:   "/personnels",
		Item:   "/personnels/%d",
		Create: "/personnels/create",
		Update: "/personnels/%d",
		Delete: "/personnels/%d",
	})
	c.Patients = newResource[model.Patient](c, "patients", Paths{
		List:   "/patients",
		Item:   "/patients/%d",
		Create: "/patients/create",
		Update: "/patients/update/%d",
		Delete: "/patients/delete/%d",
	})
	c.Batiments = newResource[model.Batiment](c, "batiments", Paths{
		List:   "/batiments",
		Item:   "/batiments/%d",
		Create: "/batiments/create",
		Update: "/batiments/%d",
		Delete: "/batiments/%d",
	})
	c.Services = newResource[model.Service](c, "services", Paths{
		List:   "/services",
		Item:   "/services/%d",
		Create: "/services/create",
		Update: "/services/%d",
	})
	c.Sections = newResource[model.Section](c, "sections", Paths{
		List:   "/sections",
		Item:   "/sections/%d",
		Create: "/sections/create",
		Update: "/sections/update/%d",
		Delete: "/sections/%d",
	})

	return c
}

// Doctors returns the subset of staff that can be assigned to a section.
func (c *Client) Doctors(ctx context.Context) ([]model.Personnel, error) {
	var out []model.Personnel
	if err := c.do(ctx, "personnels", "doctors", call{method: "GET", path: "/personnels/doctors"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping checks that the API answers on a cheap collection endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "batiments", "ping", call{method: "GET", path: "/batiments"}, nil)
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
}

func (c *Client) do(ctx context.Context, resource, op string, in call, out any) error {
	start := time.Now()
	outcome := "ok"
	defer func() {
		c.metrics.APIRequests.WithLabelValues(resource, op, outcome).Inc()
		c.metrics.APILatency.WithLabelValues(resource, op).Observe(time.Since(start).Seconds())
	}()

	req := c.http.R().SetContext(ctx)
	if len(in.query) > 0 {
		req.SetQueryParamsFromValues(in.query)
	}
	if in.body != nil {
		req.SetBody(in.body)
	}

	resp, err := req.Execute(in.method, in.path)
	if err != nil {
		outcome = "network"
		c.log.Error().Err(err).
			Str("resource", resource).
			Str("operation", op).
			Str("path", in.path).
			Msg("API request failed")
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, in.method, in.path, err)
	}

	if !resp.IsSuccess() {
		outcome = "status"
		c.log.Warn().
			Str("resource", resource).
			Str("operation", op).
			Str("path", in.path).
			Int("status", resp.StatusCode()).
			Msg("API returned an error status")
		return &StatusError{Resource: resource, Operation: op, StatusCode: resp.StatusCode()}
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*rawBody); ok {
		*raw = append((*raw)[:0], resp.Body()...)
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		outcome = "decode"
		c.log.Error().Err(err).
			Str("resource", resource).
			Str("operation", op).
			Str("path", in.path).
			Msg("API response is not valid JSON")
		return fmt.Errorf("%w: %s %s: %v", ErrDecode, in.method, in.path, err)
	}

	c.log.Debug().
		Str("resource", resource).
		Str("operation", op).
		Dur("duration", time.Since(start)).
		Msg("API request completed")
	return nil
}
