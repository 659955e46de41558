package period

import (
	"encoding/json"
	"fmt"
)

// Channel is a downstream distribution channel for climate products.
type Channel string

const (
	// ChannelNWR is NOAA Weather Radio broadcast.
	ChannelNWR Channel = "NWR"
	// ChannelNWWS is the NOAA Weather Wire text service.
	ChannelNWWS Channel = "NWWS"
	// ChannelRER is the record event report stream.
	ChannelRER Channel = "RER"
	// ChannelF6 is the monthly F-6 climate summary stream.
	ChannelF6 Channel = "F6"
)

// Class describes the kind of interval a period type covers.
type Class string

const (
	ClassMorning      Class = "am"
	ClassEvening      Class = "pm"
	ClassIntermediate Class = "im"
	ClassMonthly      Class = "mon"
	ClassSeasonal     Class = "sea"
	ClassAnnual       Class = "ann"
)

// Type classifies a reporting interval combined with its channel.
// Types are compared by value and serialize as their numeric code.
type Type struct {
	Code    int
	Name    string
	Class   Class
	Channel Channel
}

// Registered period types.
var (
	Other = Type{Code: 0, Name: "Other"}

	MorningRad      = Type{Code: 1, Name: "Daily Morning", Class: ClassMorning, Channel: ChannelNWR}
	IntermediateRad = Type{Code: 2, Name: "Daily Intermediate", Class: ClassIntermediate, Channel: ChannelNWR}
	EveningRad      = Type{Code: 3, Name: "Daily Evening", Class: ClassEvening, Channel: ChannelNWR}
	MonthlyRad      = Type{Code: 4, Name: "Monthly", Class: ClassMonthly, Channel: ChannelNWR}
	SeasonalRad     = Type{Code: 5, Name: "Seasonal", Class: ClassSeasonal, Channel: ChannelNWR}
	AnnualRad       = Type{Code: 6, Name: "Annual", Class: ClassAnnual, Channel: ChannelNWR}

	MorningNWWS      = Type{Code: 7, Name: "Daily Morning", Class: ClassMorning, Channel: ChannelNWWS}
	IntermediateNWWS = Type{Code: 8, Name: "Daily Intermediate", Class: ClassIntermediate, Channel: ChannelNWWS}
	EveningNWWS      = Type{Code: 9, Name: "Daily Evening", Class: ClassEvening, Channel: ChannelNWWS}
	MonthlyNWWS      = Type{Code: 10, Name: "Monthly", Class: ClassMonthly, Channel: ChannelNWWS}
	SeasonalNWWS     = Type{Code: 11, Name: "Seasonal", Class: ClassSeasonal, Channel: ChannelNWWS}
	AnnualNWWS       = Type{Code: 12, Name: "Annual", Class: ClassAnnual, Channel: ChannelNWWS}
)

var registry = []Type{
	Other,
	MorningRad, IntermediateRad, EveningRad, MonthlyRad, SeasonalRad, AnnualRad,
	MorningNWWS, IntermediateNWWS, EveningNWWS, MonthlyNWWS, SeasonalNWWS, AnnualNWWS,
}

// Types lists every registered period type in code order.
func Types() []Type {
	out := make([]Type, len(registry))
	copy(out, registry)
	return out
}

// TypeByCode looks up a registered type by its numeric code.
func TypeByCode(code int) (Type, error) {
	for _, t := range registry {
		if t.Code == code {
			return t, nil
		}
	}
	return Type{}, fmt.Errorf("period type code %d: %w", code, ErrInvalidParameter)
}

// IsDaily reports whether the type is a morning, intermediate, or evening report.
func (t Type) IsDaily() bool {
	return t.Class == ClassMorning || t.Class == ClassIntermediate || t.Class == ClassEvening
}

// IsPeriod reports whether the type covers a monthly, seasonal, or annual range.
func (t Type) IsPeriod() bool {
	return t.IsMonthly() || t.IsSeasonal() || t.IsAnnual()
}

func (t Type) IsMorning() bool  { return t.Class == ClassMorning }
func (t Type) IsMonthly() bool  { return t.Class == ClassMonthly }
func (t Type) IsSeasonal() bool { return t.Class == ClassSeasonal }
func (t Type) IsAnnual() bool   { return t.Class == ClassAnnual }

func (t Type) String() string {
	if t.Channel == "" {
		return t.Name
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.Channel)
}

// MarshalJSON encodes the type as its numeric code.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Code)
}

// UnmarshalJSON decodes a numeric code into the registered type.
func (t *Type) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("decode period type: %w", err)
	}
	found, err := TypeByCode(code)
	if err != nil {
		return err
	}
	*t = found
	return nil
}
