// Package snapshot provides an in-memory reference data gateway loaded from a YAML snapshot
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/repository"

	"gopkg.in/yaml.v3"
)

var (
	carrierCode = regexp.MustCompile(`^[A-Z0-9]{2}$`)
	nationCode  = regexp.MustCompile(`^[A-Z]{2}$`)
	planCode    = regexp.MustCompile(`^[A-Z]{3}$`)
)

// LoadFile reads and validates a snapshot file
func LoadFile(path string) (*model.ReferenceSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a snapshot document
func Load(r io.Reader) (*model.ReferenceSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var set model.ReferenceSet
	if err := dec.Decode(&set); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	if err := Validate(&set); err != nil {
		return nil, err
	}
	return &set, nil
}

// LoadBytes is Load over an in-memory document
func LoadBytes(data []byte) (*model.ReferenceSet, error) {
	return Load(bytes.NewReader(data))
}

// Validate checks codes and enumerations of every record
func Validate(set *model.ReferenceSet) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	for i, n := range set.Nations {
		check(nationCode.MatchString(n.Code), "nations[%d]: invalid code %q", i, n.Code)
	}
	for i, p := range set.SettlementPlans {
		check(nationCode.MatchString(p.Country), "settlement_plans[%d]: invalid country %q", i, p.Country)
		check(planCode.MatchString(p.PlanCode), "settlement_plans[%d]: invalid plan %q", i, p.PlanCode)
		check(validMethod(p.PreferredTicketingMethod) && validMethod(p.RequiredTicketingMethod),
			"settlement_plans[%d]: invalid ticketing method", i)
	}
	for i, p := range set.Participations {
		check(nationCode.MatchString(p.Country), "participations[%d]: invalid country %q", i, p.Country)
		check(planCode.MatchString(p.PlanCode), "participations[%d]: invalid plan %q", i, p.PlanCode)
		check(carrierCode.MatchString(p.Carrier), "participations[%d]: invalid carrier %q", i, p.Carrier)
		check(validMethod(p.PreferredTicketingMethod) && validMethod(p.RequiredTicketingMethod),
			"participations[%d]: invalid ticketing method", i)
	}
	for i, g := range set.GeneralSalesAgents {
		check(nationCode.MatchString(g.Country), "general_sales_agents[%d]: invalid country %q", i, g.Country)
		check(carrierCode.MatchString(g.NonParticipatingCarrier) && carrierCode.MatchString(g.AgentCarrier),
			"general_sales_agents[%d]: invalid carrier", i)
	}
	for i, a := range set.InterlineAgreements {
		check(nationCode.MatchString(a.Country), "interline_agreements[%d]: invalid country %q", i, a.Country)
		check(carrierCode.MatchString(a.ValidatingCarrier) && carrierCode.MatchString(a.ParticipatingCarrier),
			"interline_agreements[%d]: invalid carrier", i)
		switch a.AgreementType {
		case model.AgreementStandard, model.AgreementThirdParty, model.AgreementPaperOnly:
		default:
			check(false, "interline_agreements[%d]: invalid agreement type %q", i, a.AgreementType)
		}
	}
	for i, n := range set.NeutralCarriers {
		check(carrierCode.MatchString(n.Carrier), "neutral_carriers[%d]: invalid carrier %q", i, n.Carrier)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidSnapshot, errors.Join(errs...))
	}
	return nil
}

func validMethod(m model.TicketingMethod) bool {
	return m == model.TicketingMethodNone || m == model.TicketingMethodElectronic || m == model.TicketingMethodPaper
}

// referenceDataRepository serves a read-only reference set; safe for concurrent use
type referenceDataRepository struct {
	set    *model.ReferenceSet
	logger logger.LoggerInterface
}

// NewReferenceDataRepository creates a gateway over set, which must not be modified afterwards
func NewReferenceDataRepository(set *model.ReferenceSet, logger logger.LoggerInterface) repository.ReferenceData {
	return &referenceDataRepository{set: set, logger: logger}
}

func filter[T any](records []T, keep func(*T) bool) []T {
	var out []T
	for i := range records {
		if keep(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

func (r *referenceDataRepository) GetSettlementPlans(ctx context.Context, country string, date time.Time) ([]model.SettlementPlan, error) {
	r.logger.DebugContext(ctx, "Getting settlement plans from snapshot", "country", country)
	return filter(r.set.SettlementPlans, func(p *model.SettlementPlan) bool {
		return p.Country == country && model.EffectiveOn(p.EffDate, p.DiscDate, date)
	}), nil
}

func (r *referenceDataRepository) GetCarrierParticipation(ctx context.Context, country, hostID, planCode, carrier string, date time.Time) ([]model.CarrierParticipation, error) {
	r.logger.DebugContext(ctx, "Getting carrier participation from snapshot", "country", country, "plan", planCode, "carrier", carrier)
	return filter(r.set.Participations, func(p *model.CarrierParticipation) bool {
		return p.Country == country && p.HostID == hostID && p.PlanCode == planCode && p.Carrier == carrier &&
			model.EffectiveOn(p.EffDate, p.DiscDate, date)
	}), nil
}

func (r *referenceDataRepository) GetPlanParticipants(ctx context.Context, country, hostID, planCode string, date time.Time) ([]model.CarrierParticipation, error) {
	r.logger.DebugContext(ctx, "Getting plan participants from snapshot", "country", country, "plan", planCode)
	return filter(r.set.Participations, func(p *model.CarrierParticipation) bool {
		return p.Country == country && p.HostID == hostID && p.PlanCode == planCode &&
			model.EffectiveOn(p.EffDate, p.DiscDate, date)
	}), nil
}

func (r *referenceDataRepository) GetInterlineAgreements(ctx context.Context, country, hostID, validatingCarrier string, date time.Time) ([]model.InterlineAgreement, error) {
	r.logger.DebugContext(ctx, "Getting interline agreements from snapshot", "country", country, "carrier", validatingCarrier)
	return filter(r.set.InterlineAgreements, func(a *model.InterlineAgreement) bool {
		return a.Country == country && a.HostID == hostID && a.ValidatingCarrier == validatingCarrier &&
			model.EffectiveOn(a.EffDate, a.DiscDate, date)
	}), nil
}

func (r *referenceDataRepository) GetGeneralSalesAgents(ctx context.Context, hostID, country, planCode, carrier string, date time.Time) ([]model.GeneralSalesAgent, error) {
	r.logger.DebugContext(ctx, "Getting general sales agents from snapshot", "country", country, "plan", planCode, "carrier", carrier)
	return filter(r.set.GeneralSalesAgents, func(g *model.GeneralSalesAgent) bool {
		return g.Country == country && g.HostID == hostID && g.PlanCode == planCode && g.NonParticipatingCarrier == carrier &&
			model.EffectiveOn(g.EffDate, g.DiscDate, date)
	}), nil
}

func (r *referenceDataRepository) GetNeutralValidatingCarriers(ctx context.Context, country, hostID, planCode string, date time.Time) ([]model.NeutralValidatingCarrier, error) {
	r.logger.DebugContext(ctx, "Getting neutral validating carriers from snapshot", "country", country, "plan", planCode)
	return filter(r.set.NeutralCarriers, func(n *model.NeutralValidatingCarrier) bool {
		return n.Country == country && n.HostID == hostID && n.PlanCode == planCode &&
			model.EffectiveOn(n.EffDate, n.DiscDate, date)
	}), nil
}

func (r *referenceDataRepository) NationExists(ctx context.Context, country string, date time.Time) (bool, error) {
	r.logger.DebugContext(ctx, "Checking nation in snapshot", "country", country)
	for i := range r.set.Nations {
		n := &r.set.Nations[i]
		if n.Code == country && model.EffectiveOn(n.EffDate, n.DiscDate, date) {
			return true, nil
		}
	}
	return false, nil
}
