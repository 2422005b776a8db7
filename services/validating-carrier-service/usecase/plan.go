package usecase

import (
	"slices"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

// PlanFromHierarchy returns the most preferred of plans, ignoring GTC and IPC
// It returns "" when no other plan is present
func PlanFromHierarchy(plans []string) string {
	for _, p := range model.PlanHierarchy {
		if p == model.PlanGTC || p == model.PlanIPC {
			continue
		}
		if slices.Contains(plans, p) {
			return p
		}
	}
	return ""
}

// PrimaryPlan picks the plan whose outcome represents a multi-plan resolution
// A single plan is returned as is; otherwise the first hierarchy plan other than IPC
func PrimaryPlan(plans []string) string {
	if len(plans) == 1 {
		return plans[0]
	}
	for _, p := range model.PlanHierarchy {
		if p == model.PlanIPC {
			continue
		}
		if slices.Contains(plans, p) {
			return p
		}
	}
	if len(plans) > 0 {
		return plans[0]
	}
	return ""
}

// swapAllowed reports whether plan accepts GSA and neutral carriers
func swapAllowed(plan string) bool {
	return plan == model.PlanBSP || plan == model.PlanARC
}

// sortPlans orders plans by hierarchy, unknown codes last by code
func sortPlans(plans []model.SettlementPlan) {
	slices.SortStableFunc(plans, func(a, b model.SettlementPlan) int {
		ra, rb := model.PlanRank(a.PlanCode), model.PlanRank(b.PlanCode)
		if ra != rb {
			return ra - rb
		}
		switch {
		case a.PlanCode < b.PlanCode:
			return -1
		case a.PlanCode > b.PlanCode:
			return 1
		}
		return 0
	})
}

func findPlan(plans []model.SettlementPlan, code string) (model.SettlementPlan, bool) {
	for _, p := range plans {
		if p.PlanCode == code {
			return p, true
		}
	}
	return model.SettlementPlan{}, false
}

func planCodes(plans []model.SettlementPlan) []string {
	codes := make([]string, 0, len(plans))
	for _, p := range plans {
		if !slices.Contains(codes, p.PlanCode) {
			codes = append(codes, p.PlanCode)
		}
	}
	return codes
}
