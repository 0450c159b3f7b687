package plan

import "fmt"

// =============================================================================
// Bootstrap Instructions
// =============================================================================

// InstructionKind categorises a manual bootstrap step.
type InstructionKind string

const (
	// KindCertificate asks the operator to provision a TLS certificate.
	KindCertificate InstructionKind = "certificate"

	// KindIPFilter asks the operator to set up IP filtering for a deployment.
	KindIPFilter InstructionKind = "ipfilter"

	// KindDNS asks the operator to point a DNS record at a deployment.
	KindDNS InstructionKind = "dns"
)

// Instruction is one manual operational step the operator must perform
// outside the tool before the generated artifacts are usable.
type Instruction struct {
	Kind InstructionKind
	Text string
}

// BuildInstructions derives the ordered, deduplicated list of manual
// bootstrap steps from a resolved configuration sequence.
//
// Ordering reflects real-world dependency order: certificates first
// (prerequisite for TLS), then IP filtering, then DNS records - a DNS record
// pointing at an unfiltered, unencrypted endpoint is a misconfiguration
// risk. Within each category, first-seen order is kept.
//
// Identical instructions are emitted once: a certificate ARN attached to an
// environment used by several services yields a single instruction.
func BuildInstructions(configs []ResolvedConfig) []Instruction {
	var certificates, filters, records []Instruction
	seen := make(map[string]bool)

	add := func(bucket *[]Instruction, kind InstructionKind, text string) {
		if seen[text] {
			return
		}
		seen[text] = true
		*bucket = append(*bucket, Instruction{Kind: kind, Text: text})
	}

	for _, cfg := range configs {
		for _, arn := range cfg.CertificateARNs {
			if arn == "" {
				continue
			}
			add(&certificates, KindCertificate, fmt.Sprintf("register certificate %s", arn))
		}
	}

	for _, cfg := range configs {
		if cfg.IPFilter {
			add(&filters, KindIPFilter,
				fmt.Sprintf("configure IP filtering for %s/%s", cfg.Service, cfg.Environment))
		}
	}

	for _, cfg := range configs {
		if cfg.URL != nil && *cfg.URL != "" {
			add(&records, KindDNS, fmt.Sprintf("set DNS record %s", *cfg.URL))
		}
	}

	instructions := make([]Instruction, 0, len(certificates)+len(filters)+len(records))
	instructions = append(instructions, certificates...)
	instructions = append(instructions, filters...)
	instructions = append(instructions, records...)
	return instructions
}
