package model

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// AllCountries is the country code of records valid in every country
const AllCountries = "ZZ"

// TicketingMethod is the ticketing method code stored on plans and participations
type TicketingMethod string

const (
	TicketingMethodNone       TicketingMethod = ""
	TicketingMethodElectronic TicketingMethod = "E"
	TicketingMethodPaper      TicketingMethod = "P"
)

// AgreementType classifies an interline ticketing agreement
type AgreementType string

const (
	AgreementNone       AgreementType = ""
	AgreementStandard   AgreementType = "STD"
	AgreementThirdParty AgreementType = "3PT"
	AgreementPaperOnly  AgreementType = "PPR"
)

// Nation is a country known to the reference data
type Nation struct {
	ID        string     `gorm:"type:char(26);primaryKey" json:"id" yaml:"-"`
	Code      string     `gorm:"type:char(2);not null;index" json:"code" yaml:"code"`
	Name      string     `gorm:"type:varchar(100)" json:"name" yaml:"name"`
	EffDate   time.Time  `gorm:"type:date;not null" json:"eff_date" yaml:"eff_date"`
	DiscDate  *time.Time `gorm:"type:date;default:null" json:"disc_date,omitempty" yaml:"disc_date"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"-" yaml:"-"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"-" yaml:"-"`
}

func (n *Nation) BeforeCreate(tx *gorm.DB) error {
	n.ID = newID(n.ID)
	return nil
}

// SettlementPlan is a settlement plan available in a country
type SettlementPlan struct {
	ID                       string          `gorm:"type:char(26);primaryKey" json:"id" yaml:"-"`
	Country                  string          `gorm:"type:char(2);not null;index:idx_settlement_plan_country" json:"country" yaml:"country"`
	PlanCode                 string          `gorm:"type:char(3);not null" json:"plan_code" yaml:"plan"`
	PreferredTicketingMethod TicketingMethod `gorm:"type:char(1);default:''" json:"preferred_ticketing_method" yaml:"preferred"`
	RequiredTicketingMethod  TicketingMethod `gorm:"type:char(1);default:''" json:"required_ticketing_method" yaml:"required"`
	EffDate                  time.Time       `gorm:"type:date;not null" json:"eff_date" yaml:"eff_date"`
	DiscDate                 *time.Time      `gorm:"type:date;default:null" json:"disc_date,omitempty" yaml:"disc_date"`
	CreatedAt                time.Time       `gorm:"autoCreateTime" json:"-" yaml:"-"`
	UpdatedAt                time.Time       `gorm:"autoUpdateTime" json:"-" yaml:"-"`
}

func (p *SettlementPlan) BeforeCreate(tx *gorm.DB) error {
	p.ID = newID(p.ID)
	return nil
}

// CarrierParticipation records that a carrier participates in a plan for a host
type CarrierParticipation struct {
	ID                       string          `gorm:"type:char(26);primaryKey" json:"id" yaml:"-"`
	Country                  string          `gorm:"type:char(2);not null;index:idx_participation_lookup" json:"country" yaml:"country"`
	HostID                   string          `gorm:"type:varchar(3);not null;index:idx_participation_lookup" json:"host_id" yaml:"host"`
	PlanCode                 string          `gorm:"type:char(3);not null;index:idx_participation_lookup" json:"plan_code" yaml:"plan"`
	Carrier                  string          `gorm:"type:char(2);not null" json:"carrier" yaml:"carrier"`
	PreferredTicketingMethod TicketingMethod `gorm:"type:char(1);default:''" json:"preferred_ticketing_method" yaml:"preferred"`
	RequiredTicketingMethod  TicketingMethod `gorm:"type:char(1);default:''" json:"required_ticketing_method" yaml:"required"`
	EffDate                  time.Time       `gorm:"type:date;not null" json:"eff_date" yaml:"eff_date"`
	DiscDate                 *time.Time      `gorm:"type:date;default:null" json:"disc_date,omitempty" yaml:"disc_date"`
	CreatedAt                time.Time       `gorm:"autoCreateTime" json:"-" yaml:"-"`
	UpdatedAt                time.Time       `gorm:"autoUpdateTime" json:"-" yaml:"-"`
}

func (c *CarrierParticipation) BeforeCreate(tx *gorm.DB) error {
	c.ID = newID(c.ID)
	return nil
}

// GeneralSalesAgent names a carrier that may ticket on behalf of a carrier
// not participating in the plan
type GeneralSalesAgent struct {
	ID                      string     `gorm:"type:char(26);primaryKey" json:"id" yaml:"-"`
	Country                 string     `gorm:"type:char(2);not null;index:idx_gsa_lookup" json:"country" yaml:"country"`
	HostID                  string     `gorm:"type:varchar(3);not null;index:idx_gsa_lookup" json:"host_id" yaml:"host"`
	PlanCode                string     `gorm:"type:char(3);not null;index:idx_gsa_lookup" json:"plan_code" yaml:"plan"`
	NonParticipatingCarrier string     `gorm:"type:char(2);not null;index:idx_gsa_lookup" json:"non_participating_carrier" yaml:"carrier"`
	AgentCarrier            string     `gorm:"type:char(2);not null" json:"agent_carrier" yaml:"agent"`
	EffDate                 time.Time  `gorm:"type:date;not null" json:"eff_date" yaml:"eff_date"`
	DiscDate                *time.Time `gorm:"type:date;default:null" json:"disc_date,omitempty" yaml:"disc_date"`
	CreatedAt               time.Time  `gorm:"autoCreateTime" json:"-" yaml:"-"`
	UpdatedAt               time.Time  `gorm:"autoUpdateTime" json:"-" yaml:"-"`
}

func (g *GeneralSalesAgent) BeforeCreate(tx *gorm.DB) error {
	g.ID = newID(g.ID)
	return nil
}

// InterlineAgreement allows ValidatingCarrier to ticket segments of ParticipatingCarrier
type InterlineAgreement struct {
	ID                   string        `gorm:"type:char(26);primaryKey" json:"id" yaml:"-"`
	Country              string        `gorm:"type:char(2);not null;index:idx_agreement_lookup" json:"country" yaml:"country"`
	HostID               string        `gorm:"type:varchar(3);not null;index:idx_agreement_lookup" json:"host_id" yaml:"host"`
	ValidatingCarrier    string        `gorm:"type:char(2);not null;index:idx_agreement_lookup" json:"validating_carrier" yaml:"carrier"`
	ParticipatingCarrier string        `gorm:"type:char(2);not null" json:"participating_carrier" yaml:"participating"`
	AgreementType        AgreementType `gorm:"type:varchar(3);not null;check:agreement_type IN ('STD','3PT','PPR')" json:"agreement_type" yaml:"type"`
	EffDate              time.Time     `gorm:"type:date;not null" json:"eff_date" yaml:"eff_date"`
	DiscDate             *time.Time    `gorm:"type:date;default:null" json:"disc_date,omitempty" yaml:"disc_date"`
	CreatedAt            time.Time     `gorm:"autoCreateTime" json:"-" yaml:"-"`
	UpdatedAt            time.Time     `gorm:"autoUpdateTime" json:"-" yaml:"-"`
}

func (a *InterlineAgreement) BeforeCreate(tx *gorm.DB) error {
	a.ID = newID(a.ID)
	return nil
}

// NeutralValidatingCarrier may validate itineraries it does not fly
type NeutralValidatingCarrier struct {
	ID        string     `gorm:"type:char(26);primaryKey" json:"id" yaml:"-"`
	Country   string     `gorm:"type:char(2);not null;index:idx_neutral_lookup" json:"country" yaml:"country"`
	HostID    string     `gorm:"type:varchar(3);not null;index:idx_neutral_lookup" json:"host_id" yaml:"host"`
	PlanCode  string     `gorm:"type:char(3);not null;index:idx_neutral_lookup" json:"plan_code" yaml:"plan"`
	Carrier   string     `gorm:"type:char(2);not null" json:"carrier" yaml:"carrier"`
	EffDate   time.Time  `gorm:"type:date;not null" json:"eff_date" yaml:"eff_date"`
	DiscDate  *time.Time `gorm:"type:date;default:null" json:"disc_date,omitempty" yaml:"disc_date"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"-" yaml:"-"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"-" yaml:"-"`
}

func (n *NeutralValidatingCarrier) BeforeCreate(tx *gorm.DB) error {
	n.ID = newID(n.ID)
	return nil
}

// ReferenceModels lists every reference table, in migration order
func ReferenceModels() []any {
	return []any{
		&Nation{},
		&SettlementPlan{},
		&CarrierParticipation{},
		&GeneralSalesAgent{},
		&InterlineAgreement{},
		&NeutralValidatingCarrier{},
	}
}

// EffectiveOn reports whether a record with the given dates is in force on date
func EffectiveOn(eff time.Time, disc *time.Time, date time.Time) bool {
	if eff.After(date) {
		return false
	}
	return disc == nil || !disc.Before(date)
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return ulid.Make().String()
}

// ReferenceSet is a complete set of reference records, as loaded from a snapshot
type ReferenceSet struct {
	Nations             []Nation                   `yaml:"nations"`
	SettlementPlans     []SettlementPlan           `yaml:"settlement_plans"`
	Participations      []CarrierParticipation     `yaml:"participations"`
	GeneralSalesAgents  []GeneralSalesAgent        `yaml:"general_sales_agents"`
	InterlineAgreements []InterlineAgreement       `yaml:"interline_agreements"`
	NeutralCarriers     []NeutralValidatingCarrier `yaml:"neutral_carriers"`
}
