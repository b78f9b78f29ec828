package styles

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-styles/layering"
)

// ConditionalRule applies Format to cells for which Expr evaluates to true.
// Lower Priority values are evaluated first.
type ConditionalRule struct {
	Name       string             `json:"name,omitempty"`
	Expr       string             `json:"expr"`
	Format     DifferentialFormat `json:"format"`
	Priority   int                `json:"priority"`
	StopIfTrue bool               `json:"stopIfTrue,omitempty"`
}

func (r ConditionalRule) label(position int) string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("rule:%d", position)
}

// CellContext is the cell a rule set is evaluated against. Expressions see
// value, row, col and sheet as variables and Args under args.
type CellContext struct {
	Sheet string
	Row   int
	Col   int
	Value any
	Args  map[string]any
	Now   *time.Time
}

func (c CellContext) snapshot() map[string]any {
	return map[string]any{
		"value": c.Value,
		"row":   c.Row,
		"col":   c.Col,
		"sheet": c.Sheet,
	}
}

// Match reports the outcome of evaluating a rule set. DxfID is -1 when no
// rule matched. When several rules match, their formats are merged with the
// higher priority rule winning per attribute and DxfID points at the merged
// record.
type Match struct {
	Rules   []ConditionalRule
	DxfID   int
	Matched bool
}

type conditionalEntry struct {
	rule    ConditionalRule
	dxfID   int
	program CompiledRule
	order   int
}

// ConditionalFormatting is an ordered rule set bound to a stylesheet.
type ConditionalFormatting struct {
	sheet *Stylesheet
	mu    sync.RWMutex
	rules []conditionalEntry
	added int
}

// NewConditionalFormatting returns an empty rule set using the stylesheet's
// evaluator.
func (s *Stylesheet) NewConditionalFormatting() *ConditionalFormatting {
	return &ConditionalFormatting{sheet: s}
}

// AddRule compiles rule, interns its format and returns the dxf index.
func (cf *ConditionalFormatting) AddRule(rule ConditionalRule) (int, error) {
	if rule.Expr == "" {
		return -1, fmt.Errorf("styles: conditional rule %q has no expression", rule.Name)
	}
	program, err := cf.sheet.evaluator.Compile(rule.Expr, ExpectBoolean())
	if err != nil {
		return -1, wrapEvaluationError(evaluatorEngineName(cf.sheet.evaluator), rule.Expr, rule.Name, err)
	}
	dxfID, err := cf.sheet.dxfs.Intern(rule.Format)
	if err != nil {
		return -1, err
	}
	rule.Format = rule.Format.Clone()

	cf.mu.Lock()
	defer cf.mu.Unlock()
	cf.rules = append(cf.rules, conditionalEntry{rule: rule, dxfID: dxfID, program: program, order: cf.added})
	cf.added++
	sort.SliceStable(cf.rules, func(i, j int) bool {
		return cf.rules[i].rule.Priority < cf.rules[j].rule.Priority
	})
	return dxfID, nil
}

// Rules returns the rules in evaluation order.
func (cf *ConditionalFormatting) Rules() []ConditionalRule {
	cf.mu.RLock()
	defer cf.mu.RUnlock()
	out := make([]ConditionalRule, len(cf.rules))
	for i, entry := range cf.rules {
		out[i] = entry.rule
		out[i].Format = entry.rule.Format.Clone()
	}
	return out
}

// Len returns the number of rules.
func (cf *ConditionalFormatting) Len() int {
	cf.mu.RLock()
	defer cf.mu.RUnlock()
	return len(cf.rules)
}

// Evaluate runs the rules in priority order against cell. A rule whose
// result is not a boolean fails the evaluation. Evaluation stops after the
// first matching rule flagged StopIfTrue.
func (cf *ConditionalFormatting) Evaluate(ctx context.Context, cell CellContext) (Match, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cf.mu.RLock()
	entries := append([]conditionalEntry(nil), cf.rules...)
	cf.mu.RUnlock()

	engine := evaluatorEngineName(cf.sheet.evaluator)
	var matched []conditionalEntry
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return Match{DxfID: -1}, err
		}
		label := entry.rule.label(entry.order)
		ruleCtx := RuleContext{
			Snapshot: cell.snapshot(),
			Now:      cell.Now,
			Args:     cell.Args,
			Rule:     label,
		}.withDefaults()

		start := time.Now()
		result, err := entry.program.Evaluate(ruleCtx)
		hit, ok := result.(bool)
		if err == nil && !ok {
			// custom evaluators may ignore ExpectBoolean
			err = fmt.Errorf("styles: expected boolean result, got %T", result)
		}
		err = wrapEvaluationError(engine, entry.rule.Expr, label, err)
		cf.sheet.logEvaluation(engine, entry.rule.Expr, label, time.Since(start), err)
		if err != nil {
			return Match{DxfID: -1}, err
		}
		if !hit {
			continue
		}
		matched = append(matched, entry)
		if entry.rule.StopIfTrue {
			break
		}
	}
	return cf.match(matched)
}

func (cf *ConditionalFormatting) match(matched []conditionalEntry) (Match, error) {
	switch len(matched) {
	case 0:
		return Match{DxfID: -1}, nil
	case 1:
		return Match{Rules: []ConditionalRule{matched[0].rule}, DxfID: matched[0].dxfID, Matched: true}, nil
	}
	rules := make([]ConditionalRule, len(matched))
	formats := make([]DifferentialFormat, len(matched))
	for i, entry := range matched {
		rules[i] = entry.rule
		formats[i] = entry.rule.Format
	}
	dxfID, err := cf.sheet.dxfs.Intern(mergeDifferentials(formats...))
	if err != nil {
		return Match{DxfID: -1}, err
	}
	return Match{Rules: rules, DxfID: dxfID, Matched: true}, nil
}

// mergeDifferentials combines formats ordered strongest first. Font patches
// merge attribute by attribute; fill, border and number format come whole
// from the strongest format that sets them.
func mergeDifferentials(formats ...DifferentialFormat) DifferentialFormat {
	var out DifferentialFormat
	var patches []FontPatch
	for _, format := range formats {
		if format.Font != nil {
			patches = append(patches, *format.Font)
		}
		if out.Fill == nil && format.Fill != nil {
			fill := format.Fill.Clone()
			out.Fill = &fill
		}
		if out.Border == nil {
			out.Border = clonePtr(format.Border)
		}
		if out.NumberFormat == nil {
			out.NumberFormat = clonePtr(format.NumberFormat)
		}
	}
	if len(patches) > 0 {
		font := layering.MergeLayers(patches...)
		out.Font = &font
	}
	return out
}
