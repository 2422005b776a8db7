package usecase

import (
	"context"
	"reflect"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

var auCarriers = []any{"QF", "VA", "LH", "TG", "UA", "XX", "EK", "2N"}

func TestResolve_Properties(t *testing.T) {
	uc := newResolver(t, DefaultOptions())
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("resolving twice gives the same outcome", prop.ForAll(
		func(carriers []string, n int, requested string) bool {
			req := request("AU", requested, carriers[:n]...)
			first, err1 := uc.Resolve(ctx, req)
			second, err2 := uc.Resolve(ctx, req)
			if err1 != nil || err2 != nil {
				return false
			}
			return reflect.DeepEqual(first, second)
		},
		gen.SliceOfN(4, gen.OneConstOf(auCarriers...)),
		gen.IntRange(1, 4),
		gen.OneConstOf(append([]any{""}, auCarriers...)...),
	))

	properties.Property("valid carriers do not depend on segment order", prop.ForAll(
		func(carriers []string, n int, requested string) bool {
			forward := carriers[:n]
			backward := slices.Clone(forward)
			slices.Reverse(backward)

			a, err1 := uc.Resolve(ctx, request("AU", requested, forward...))
			b, err2 := uc.Resolve(ctx, request("AU", requested, backward...))
			if err1 != nil || err2 != nil {
				return false
			}
			ca, cb := slices.Clone(a.ValidatingCxrs), slices.Clone(b.ValidatingCxrs)
			slices.Sort(ca)
			slices.Sort(cb)
			return a.Result == b.Result && slices.Equal(ca, cb) && a.HashKey == b.HashKey
		},
		gen.SliceOfN(4, gen.OneConstOf(auCarriers...)),
		gen.IntRange(1, 4),
		gen.OneConstOf(append([]any{""}, auCarriers...)...),
	))

	properties.Property("outcome shape matches its result", prop.ForAll(
		func(carriers []string, n int, requested string) bool {
			out, err := uc.Resolve(ctx, request("AU", requested, carriers[:n]...))
			if err != nil {
				return false
			}
			if !out.Result.IsValid() {
				return len(out.ValidatingCxrs) == 0 && out.DefaultCxr == "" && out.Message != ""
			}
			if out.DefaultCxr != "" && out.ValidatingCxrs[0] != out.DefaultCxr {
				return false
			}
			return len(out.ValidatingCxrs) > 0 && out.IsGsaSwap == (out.Result != model.Valid)
		},
		gen.SliceOfN(4, gen.OneConstOf(auCarriers...)),
		gen.IntRange(1, 4),
		gen.OneConstOf(append([]any{""}, auCarriers...)...),
	))

	// a carrier alone on its itinerary needs no interline agreement
	properties.Property("single carrier itinerary validates its participating carrier", prop.ForAll(
		func(cxr string) bool {
			out, err := uc.Resolve(ctx, request("AU", cxr, cxr))
			if err != nil {
				return false
			}
			return out.Result == model.Valid && out.DefaultCxr == cxr && out.Status == model.ValidOverride
		},
		gen.OneConstOf("QF", "VA", "TG", "UA", "2N", "3N", "G2"),
	))

	properties.TestingRun(t)
}
