package analyzer

import "sync"

// rawActionVerbs is the curated accomplishment-verb vocabulary, grouped by
// domain. Several verbs recur across domains; ActionVerbs deduplicates them.
var rawActionVerbs = []string{
	// Leadership & management
	"managed", "led", "increased", "reduced", "achieved", "developed",
	"supervised", "directed", "coordinated", "oversaw", "spearheaded", "delegated",
	"organised", "executed", "administered", "facilitated", "guided", "chaired",
	"orchestrated", "motivated", "empowered", "influenced", "transformed", "streamlined",

	// Problem-solving & analytical
	"resolved", "diagnosed", "investigated", "analyzed", "evaluated", "assessed",
	"identified", "interpreted", "synthesised", "formulated", "conceptualised", "devised",
	"designed", "troubleshot", "improved", "optimised", "innovated", "calculated",
	"forecasted", "critiqued",

	// Communication & interpersonal
	"presented", "negotiated", "persuaded", "advised", "consulted", "counseled",
	"communicated", "trained", "educated", "instructed", "explained",
	"mediated", "promoted", "drafted", "wrote", "edited", "proofread", "published",
	"corresponded",

	// Technical & IT
	"programmed", "engineered", "implemented", "built",
	"debugged", "tested", "automated", "integrated", "configured",
	"maintained", "updated", "secured", "installed", "networked", "deployed",
	"customised", "coded",

	// Sales & marketing
	"sold", "marketed", "advertised", "pitched",
	"closed", "converted", "generated", "captured", "expanded",
	"maximised", "upsold", "strategized", "launched", "branded", "targeted",

	// Finance & accounting
	"audited", "budgeted", "analysed",
	"allocated", "balanced", "estimated", "reconciled", "reported",
	"controlled", "projected", "processed", "invested",
	"costed",

	// Customer service & client relations
	"assisted", "supported", "served", "responded",
	"addressed", "handled", "engaged", "retained",
	"followed-up", "welcomed", "listened", "recommended", "satisfied",
	"advocated", "collaborated",

	// Teaching & training
	"taught", "coached", "mentored",
	"demonstrated", "conducted",
	"adapted", "encouraged", "inspired",
	"illustrated", "moderated",

	// Creative & design
	"created", "photographed",
	"sketched", "produced", "styled",
	"crafted", "painted", "filmed", "animated",
	"composed", "curated", "visualized",

	// Medical & healthcare
	"treated", "examined", "prescribed",
	"monitored", "rehabilitated", "operated",
	"recorded",
	"intervened", "researched",

	// Research & development
	"experimented",
	"documented", "validated", "discovered", "compiled",
	"compared",

	// Operations & logistics
	"scheduled",
	"arranged", "dispatched",
	"standardized", "delivered",
	"transported",

	// Legal & compliance
	"reviewed", "litigated",
	"argued", "complied",
	"defended", "filed", "enforced",
	"arbitrated",

	// Engineering & manufacturing
	"manufactured", "fabricated", "constructed",
	"assembled", "modeled",
	"upgraded",

	// Human resources
	"recruited", "interviewed", "hired",

	// Environmental & sustainability
	"conserved", "restored", "protected", "certified", "measured",
	"enhanced",
}

var (
	verbsOnce   sync.Once
	actionVerbs []string
)

// ActionVerbs returns the deduplicated vocabulary in first-occurrence order.
func ActionVerbs() []string {
	verbsOnce.Do(func() {
		seen := make(map[string]struct{}, len(rawActionVerbs))
		actionVerbs = make([]string, 0, len(rawActionVerbs))
		for _, v := range rawActionVerbs {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			actionVerbs = append(actionVerbs, v)
		}
	})
	return actionVerbs
}
