package domain

import (
	"context"
	"encoding/json"
	"time"
)

const ContextProfileKey = "performanceProfile"

// Profile times the stages of one snapshot build. It lives on the request
// context and is returned to the caller when profiling is requested.
type Profile struct {
	Spans   []*Span `json:"spans"`
	TotalMs *int64  `json:"totalMs"`
	startTs time.Time
}

type Span struct {
	Name    string `json:"name"`
	Elapsed *int64 `json:"elapsed"`
	startTs time.Time
}

func NewProfile() (*Profile, func()) {
	p := &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}
	return p, p.End
}

func ProfileFromContext(ctx context.Context) *Profile {
	p, ok := ctx.Value(ContextProfileKey).(*Profile)
	if !ok {
		return nil
	}
	return p
}

func (p *Profile) End() {
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

// StartSpan ends the previous span and opens a new one. Not safe for
// concurrent use; concurrent stages should AddSpan finished spans instead.
func (p *Profile) StartSpan(name string) (span *Span, endSpan func()) {
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	span = &Span{Name: name, startTs: time.Now()}
	p.Spans = append(p.Spans, span)
	return span, span.End
}

func NewSpan(name string) (*Span, func()) {
	s := &Span{Name: name, startTs: time.Now()}
	return s, s.End
}

func (s *Span) End() {
	if s.Elapsed == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.Elapsed = &t
	}
}

func (p *Profile) AddSpan(s *Span) {
	p.Spans = append(p.Spans, s)
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	return json.Marshal(p)
}
