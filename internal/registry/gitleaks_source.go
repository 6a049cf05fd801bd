package registry

import (
	"log/slog"
	"strings"

	"github.com/spf13/viper"
	gitleaksconfig "github.com/zricethezav/gitleaks/v8/config"
)

// builtinSpecs adapts gitleaks's declarative rule catalogue into this
// module's PatternSpec shape, the same viper-driven loading idiom this
// codebase already uses to ingest gitleaks's TOML config for redaction
// (see DESIGN.md). Only the rule *declarations* (regex, keywords, entropy)
// are reused; detection itself always runs through this module's own
// prefilter/matcher/entropy pipeline, never gitleaks's detector, so the
// anti-backtracking guarantee in SPEC_FULL §9 is never delegated away.
func builtinSpecs() []PatternSpec {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(gitleaksconfig.DefaultConfig)); err != nil {
		slog.Error("registry: failed to read embedded gitleaks config", "error", err)
		return nil
	}

	var vc gitleaksconfig.ViperConfig
	if err := v.Unmarshal(&vc); err != nil {
		slog.Error("registry: failed to unmarshal embedded gitleaks config", "error", err)
		return nil
	}

	cfg, err := vc.Translate()
	if err != nil {
		slog.Error("registry: failed to translate embedded gitleaks config", "error", err)
		return nil
	}

	specs := make([]PatternSpec, 0, len(cfg.Rules))
	for ruleID, rule := range cfg.Rules {
		if rule.Regex == nil {
			continue
		}
		if len(rule.Keywords) == 0 {
			// A rule with no prefilter keywords can never satisfy the
			// prefilter-soundness invariant; drop it rather than fail the
			// whole built-in catalogue at process startup.
			slog.Debug("registry: dropping gitleaks rule with no keywords", "rule", ruleID)
			continue
		}

		secretGroup := rule.SecretGroup
		if secretGroup <= 0 {
			secretGroup = 1
		}

		var minEntropy *float64
		if rule.Entropy > 0 {
			e := rule.Entropy
			minEntropy = &e
		}

		specs = append(specs, PatternSpec{
			ID:             classify(ruleID, rule.Tags) + "/" + ruleID,
			Name:           ruleID,
			Description:    rule.Description,
			Severity:       severityFor(ruleID, rule.Tags),
			Regex:          rule.Regex.String(),
			SecretGroup:    secretGroup,
			Keywords:       append([]string(nil), rule.Keywords...),
			MinEntropy:     minEntropy,
			DefaultEnabled: true,
		})
	}
	return specs
}

// classify infers a provider group from a gitleaks rule id/tags. gitleaks
// itself has no notion of this module's {ai, cloud, payments, ...} grouping,
// so the mapping is a pragmatic keyword match over the rule id.
func classify(ruleID string, tags []string) string {
	id := strings.ToLower(ruleID)
	all := append([]string{id}, lower(tags)...)
	joined := strings.Join(all, " ")

	switch {
	case containsAny(joined, "openai", "anthropic", "cohere", "huggingface", "replicate", "mistral", "perplexity"):
		return "ai"
	case containsAny(joined, "aws", "gcp", "gcloud", "azure", "alibaba", "digitalocean", "heroku", "cloudflare"):
		return "cloud"
	case containsAny(joined, "stripe", "paypal", "square", "braintree", "plaid", "adyen"):
		return "payments"
	case containsAny(joined, "github", "gitlab", "bitbucket", "npm", "pypi", "rubygems"):
		return "vcs"
	case containsAny(joined, "slack", "discord", "twilio", "sendgrid", "mailgun", "mailchimp", "telegram"):
		return "comms"
	case containsAny(joined, "postgres", "mysql", "mongodb", "redis", "elastic", "cassandra", "snowflake"):
		return "database"
	default:
		return "infra"
	}
}

// severityFor assigns a severity band for gitleaks-sourced rules; gitleaks
// does not itself carry a severity field, so this is a deliberate, reviewed
// mapping rather than a translation.
func severityFor(ruleID string, tags []string) string {
	id := strings.ToLower(ruleID)
	all := append([]string{id}, lower(tags)...)
	joined := strings.Join(all, " ")

	switch {
	case containsAny(joined, "private-key", "live", "production"):
		return "critical"
	case containsAny(joined, "generic-api-key", "generic", "test", "sandbox"):
		return "medium"
	default:
		return "high"
	}
}

func lower(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
