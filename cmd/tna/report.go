package main

import (
	"fmt"
	"sort"
	"strings"

	"qdpi-hq/tna/pkg/processing"
	"qdpi-hq/tna/pkg/processing/tokens"
	"qdpi-hq/tna/pkg/vocab"
)

// costDecimals is the number of decimals shown next to the exact cost.
const costDecimals = 6

type tokenView struct {
	Text    string `json:"text"`
	ID      int    `json:"id"`
	Special bool   `json:"special"`
}

type tokenizeReport struct {
	RequestID string      `json:"request_id"`
	Strategy  string      `json:"strategy"`
	Count     int         `json:"count"`
	Special   int         `json:"special"`
	Tokens    []tokenView `json:"tokens"`
}

func newTokenizeReport(res *processing.Result) tokenizeReport {
	views := make([]tokenView, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		views = append(views, tokenView{Text: tok.Text, ID: tok.ID, Special: tok.Special})
	}
	return tokenizeReport{
		RequestID: res.RequestID,
		Strategy:  res.Strategy,
		Count:     res.Count,
		Special:   res.Special,
		Tokens:    views,
	}
}

func (r tokenizeReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tokens: %d (%d special, %s)\n", r.Count, r.Special, r.Strategy)
	for i, tok := range r.Tokens {
		id := "?"
		if tok.ID != tokens.UnknownID {
			id = fmt.Sprint(tok.ID)
		}
		marker := ""
		if tok.Special {
			marker = " *"
		}
		fmt.Fprintf(&b, "%4d  %-6s %q%s\n", i, id, tok.Text, marker)
	}
	return strings.TrimRight(b.String(), "\n")
}

type estimateReport struct {
	RequestID     string  `json:"request_id"`
	Strategy      string  `json:"strategy"`
	Tokens        int     `json:"tokens"`
	TokensPerUnit float64 `json:"tokens_per_unit"`
	Cost          float64 `json:"cost"`
	CostExact     string  `json:"cost_exact"`
	CostDecimal   string  `json:"cost_decimal"`
}

func newEstimateReport(res *processing.Result) estimateReport {
	return estimateReport{
		RequestID:     res.RequestID,
		Strategy:      res.Strategy,
		Tokens:        res.Count,
		TokensPerUnit: res.Cost.TokensPerUnit,
		Cost:          res.Cost.Float64(),
		CostExact:     res.Cost.String(),
		CostDecimal:   res.Cost.Decimal(costDecimals),
	}
}

func (r estimateReport) String() string {
	return fmt.Sprintf("Tokens: %d\nTokens per unit: %g\nCost: %s (%s)",
		r.Tokens, r.TokensPerUnit, r.CostDecimal, r.CostExact)
}

type vocabReport struct {
	Source        string              `json:"source"`
	Size          int                 `json:"size"`
	QDPITokens    []string            `json:"qdpi_tokens"`
	SpecialGroups map[string][]string `json:"special_tokens"`
	ModelInfo     map[string]any      `json:"model_info"`
}

func newVocabReport(store *vocab.Store) vocabReport {
	groups := make(map[string][]string)
	for _, name := range store.SpecialGroups() {
		groups[name] = store.SpecialGroup(name)
	}
	return vocabReport{
		Source:        store.Source(),
		Size:          store.Size(),
		QDPITokens:    store.QDPITokens(),
		SpecialGroups: groups,
		ModelInfo:     store.Metadata(),
	}
}

func (r vocabReport) String() string {
	var b strings.Builder
	if r.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", r.Source)
	}
	fmt.Fprintf(&b, "Vocabulary size: %d\n", r.Size)
	fmt.Fprintf(&b, "QDPI tokens: %s\n", strings.Join(r.QDPITokens, " "))

	names := make([]string, 0, len(r.SpecialGroups))
	for name := range r.SpecialGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == vocab.QDPIGroup {
			continue
		}
		fmt.Fprintf(&b, "Special group %s: %s\n", name, strings.Join(r.SpecialGroups[name], " "))
	}

	keys := make([]string, 0, len(r.ModelInfo))
	for k := range r.ModelInfo {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteString("Model info:")
	if len(keys) == 0 {
		b.WriteString(" (none)")
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  %s: %v", k, r.ModelInfo[k])
	}
	return b.String()
}
