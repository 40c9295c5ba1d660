package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mates/internal/logging"
	"github.com/abhisek/mates/internal/store"
)

// recorder appends one store event per call, failed calls included.
type recorder struct {
	next Provider
	repo store.EventRepo
}

// WithLogging records every call made through p in repo.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &recorder{next: p, repo: repo}
}

func (r *recorder) ModelID() string { return r.next.ModelID() }

func (r *recorder) Generate(ctx context.Context, req Request) (*Response, error) {
	began := time.Now()
	resp, err := r.next.Generate(ctx, req)
	ev := r.event(ctx, req, resp, err, time.Since(began))

	entry := logging.FromContext(ctx).WithFields(logrus.Fields{
		"purpose":    ev.Purpose,
		"model":      ev.Model,
		"latency_ms": ev.LatencyMs,
		"tokens_in":  ev.InputTokens,
		"tokens_out": ev.OutputTokens,
	})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Debug("LLM call")

	if werr := r.repo.AppendLLMRequest(context.WithoutCancel(ctx), ev); werr != nil {
		entry.WithError(werr).Warn("LLM event not recorded")
	}
	return resp, err
}

func (r *recorder) event(ctx context.Context, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    providerName(r.next),
		Model:       r.next.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens, ev.OutputTokens = resp.Usage.InputTokens, resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		if e := (*Error)(nil); errors.As(err, &e) && ev.ResponseBody == "" {
			ev.ResponseBody = string(e.Content)
		}
	}
	return ev
}

type transcriptDoc struct {
	System   string    `yaml:"system,omitempty"`
	Messages []Message `yaml:"messages"`
	Schema   *Schema   `yaml:"schema,omitempty"`
}

// transcript renders the request as YAML for the event log.
func transcript(req Request) string {
	out, err := yaml.Marshal(transcriptDoc{System: req.System, Messages: req.Messages, Schema: req.Schema})
	if err != nil {
		return err.Error()
	}
	return string(out)
}
