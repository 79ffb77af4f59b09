package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tonyback0101-cmyk/seeqi/internal/almanac"
	"github.com/tonyback0101-cmyk/seeqi/internal/archetype"
	"github.com/tonyback0101-cmyk/seeqi/internal/genproxy"
)

// PalmInsight produces the palm modality insight.
func (o *Orchestrator) PalmInsight(ctx context.Context, a archetype.Palm, locale string) (Insight, error) {
	return o.run(ctx, "palm", palmUserPayload(a, locale), FallbackPalm(a))
}

// TongueInsight produces the tongue modality insight.
func (o *Orchestrator) TongueInsight(ctx context.Context, a archetype.Tongue, locale string) (Insight, error) {
	return o.run(ctx, "tongue", tongueUserPayload(a, locale), FallbackTongue(a))
}

// DreamInsight produces the dream modality insight.
func (o *Orchestrator) DreamInsight(ctx context.Context, a archetype.Dream, locale string) (Insight, error) {
	return o.run(ctx, "dream", dreamUserPayload(a, locale), FallbackDream(a))
}

// run makes the single generation call for one modality and applies the
// fallback policy by explicit case analysis. Exactly one origin wins: a
// partially parsed generated reply is a failure, never mixed with fallback.
func (o *Orchestrator) run(ctx context.Context, stage, user string, fb Insight) (Insight, error) {
	raw, err := o.gen.Generate(ctx, stage, genproxy.Request{
		System:      insightSystemTemplate,
		User:        user,
		ModelHint:   o.cfg.ModelHint,
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
	})
	if err == nil {
		ins, perr := parseInsight(raw)
		if perr == nil {
			ins.Source = SourceGenerated
			slog.Debug("generation used", "stage", stage)
			return ins, nil
		}
		err = &genproxy.Error{Stage: stage, Reason: genproxy.ReasonMalformed, Err: perr}
	}
	if gerr := o.substitute(stage, err); gerr != nil {
		return Insight{}, gerr
	}
	return fb, nil
}

// EnrichWealth runs the narrower wealth-line enrichment. A successful reply
// overrides only risk, potential and summary; the level classification stays
// rule-derived. On failure the base record survives under the permissive
// policy and the request fails under the strict one.
func (o *Orchestrator) EnrichWealth(ctx context.Context, a archetype.Palm, base Wealth, locale string) (Wealth, error) {
	raw, err := o.gen.Generate(ctx, "wealth", genproxy.Request{
		System:      wealthSystemTemplate,
		User:        wealthUserPayload(a, base, locale),
		ModelHint:   o.cfg.ModelHint,
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
	})
	if err == nil {
		var reply struct {
			Risk      string `json:"risk"`
			Potential string `json:"potential"`
			Summary   string `json:"summary"`
		}
		perr := json.Unmarshal([]byte(extractJSON(raw)), &reply)
		if perr == nil && (reply.Risk != "" || reply.Potential != "" || reply.Summary != "") {
			out := base
			if reply.Risk != "" {
				out.Risk = reply.Risk
			}
			if reply.Potential != "" {
				out.Potential = reply.Potential
			}
			if reply.Summary != "" {
				out.Summary = reply.Summary
			}
			slog.Debug("generation used", "stage", "wealth")
			return out, nil
		}
		if perr == nil {
			perr = errors.New("reply has no usable fields")
		}
		err = &genproxy.Error{Stage: "wealth", Reason: genproxy.ReasonMalformed, Err: perr}
	}
	if gerr := o.substitute("wealth", err); gerr != nil {
		return Wealth{}, gerr
	}
	return base, nil
}

// ElaborateAdvice textually elaborates the rule-sourced qi advice. The reply
// replaces the advice list wholesale or not at all.
func (o *Orchestrator) ElaborateAdvice(ctx context.Context, tag string, advice []string, cal almanac.Day, locale string) ([]string, error) {
	raw, err := o.gen.Generate(ctx, "qi_advice", genproxy.Request{
		System:      adviceSystemTemplate,
		User:        adviceUserPayload(tag, advice, cal, locale),
		ModelHint:   o.cfg.ModelHint,
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
	})
	if err == nil {
		var reply struct {
			Advice []string `json:"advice"`
		}
		perr := json.Unmarshal([]byte(extractJSON(raw)), &reply)
		if perr == nil && len(nonBlank(reply.Advice)) > 0 {
			slog.Debug("generation used", "stage", "qi_advice")
			return nonBlank(reply.Advice), nil
		}
		if perr == nil {
			perr = errors.New("reply advice list is empty")
		}
		err = &genproxy.Error{Stage: "qi_advice", Reason: genproxy.ReasonMalformed, Err: perr}
	}
	if gerr := o.substitute("qi_advice", err); gerr != nil {
		return nil, gerr
	}
	return FallbackAdvice(advice), nil
}

// substitute is the policy decision point. It returns the error to fail with
// under the strict policy, or nil when the permissive policy allows the
// caller to use its rule-derived fallback.
func (o *Orchestrator) substitute(stage string, err error) *genproxy.Error {
	var gerr *genproxy.Error
	if !errors.As(err, &gerr) {
		gerr = &genproxy.Error{Stage: stage, Reason: genproxy.ReasonNetwork, Err: err}
	}
	if o.cfg.Policy == PolicyStrict {
		return gerr
	}
	slog.Warn("generation failed, substituting rule-derived content",
		"stage", stage, "reason", string(gerr.Reason))
	return nil
}

// parseInsight parses a generation reply into the Insight shape and applies
// the validity check: at least one non-blank structured field. Grammatically
// valid but low-quality text passes; the check cannot tell it apart from a
// genuine success.
func parseInsight(raw string) (Insight, error) {
	var reply struct {
		Summary []string `json:"summary"`
		Bullets []string `json:"bullets"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &reply); err != nil {
		return Insight{}, fmt.Errorf("decoding reply: %w", err)
	}

	ins := Insight{Summary: nonBlank(reply.Summary), Bullets: nonBlank(reply.Bullets)}
	if len(ins.Summary) == 0 && len(ins.Bullets) == 0 {
		return Insight{}, errors.New("reply has no usable fields")
	}
	if len(ins.Summary) > 3 {
		ins.Summary = ins.Summary[:3]
	}
	if len(ins.Bullets) > 5 {
		ins.Bullets = ins.Bullets[:5]
	}
	return ins, nil
}

// extractJSON strips markdown fences and surrounding prose, returning the
// outermost JSON object in the reply.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			return s[i : j+1]
		}
	}
	return s
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
