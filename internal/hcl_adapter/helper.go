package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/scopegraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional fields with zero-width
// expressions, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	defined := rng.End.Byte > rng.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", rng.String(),
		"is_defined", defined,
	)
	return defined
}

// evalValue evaluates expr without variables and converts the result to want.
func evalValue(expr hcl.Expression, want cty.Type, attrName string) (cty.Value, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("%s: failed to evaluate %q: %w", expr.Range(), attrName, diags)
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%s: %q must be %s: %w", expr.Range(), attrName, want.FriendlyName(), err)
	}
	if converted.IsNull() {
		return cty.NilVal, fmt.Errorf("%s: %q must not be null", expr.Range(), attrName)
	}
	return converted, nil
}

// evalStrings reads an optional list-of-strings attribute such as `requires`.
func evalStrings(ctx context.Context, expr hcl.Expression, attrName string) ([]string, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	val, err := evalValue(expr, cty.List(cty.String), attrName)
	if err != nil {
		return nil, err
	}
	var out []string
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return nil, fmt.Errorf("%s: %q: %w", expr.Range(), attrName, err)
	}
	return out, nil
}

// evalBool reads an optional boolean attribute. It returns nil when the
// attribute is absent.
func evalBool(ctx context.Context, expr hcl.Expression, attrName string) (*bool, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	val, err := evalValue(expr, cty.Bool, attrName)
	if err != nil {
		return nil, err
	}
	var b bool
	if err := gocty.FromCtyValue(val, &b); err != nil {
		return nil, fmt.Errorf("%s: %q: %w", expr.Range(), attrName, err)
	}
	return &b, nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
