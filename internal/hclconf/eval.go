package hclconf

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// evalStringList evaluates expr to a list of strings. A nil or null
// expression yields nil, which callers treat as "attribute absent"; an
// explicitly empty list comes back as a non-nil empty slice, which clears
// a previously declared program.
func evalStringList(expr hcl.Expression, evalCtx *hcl.EvalContext) ([]string, error) {
	val, err := evalValue(expr, evalCtx)
	if err != nil || val == cty.NilVal {
		return nil, err
	}

	listVal, convErr := convert.Convert(val, cty.List(cty.String))
	if convErr != nil {
		return nil, convErr
	}

	out := []string{}
	for it := listVal.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() {
			return nil, fmt.Errorf("list element must not be null")
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}

// evalString evaluates expr to a string; nil/null yields "".
func evalString(expr hcl.Expression, evalCtx *hcl.EvalContext) (string, error) {
	val, err := evalValue(expr, evalCtx)
	if err != nil || val == cty.NilVal {
		return "", err
	}

	strVal, convErr := convert.Convert(val, cty.String)
	if convErr != nil {
		return "", convErr
	}
	return strVal.AsString(), nil
}

// evalValue resolves expr against evalCtx, normalizing "absent" to
// cty.NilVal. Unknown values cannot occur here (locals are literals), but
// are rejected rather than silently stringified.
func evalValue(expr hcl.Expression, evalCtx *hcl.EvalContext) (cty.Value, error) {
	if expr == nil {
		return cty.NilVal, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if val.IsNull() {
		return cty.NilVal, nil
	}
	if !val.IsWhollyKnown() {
		return cty.NilVal, fmt.Errorf("value is not known at load time")
	}
	return val, nil
}
