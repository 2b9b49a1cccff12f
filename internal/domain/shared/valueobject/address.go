package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Address is a value object representing a US-style postal address
// It is immutable - all operations return new Address instances
type Address struct {
	street1 string
	street2 string
	city    string
	state   string
	zip     string
	country string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithStreet2 sets the second street line (suite, unit, floor)
func WithStreet2(street2 string) AddressOption {
	return func(a *Address) {
		a.street2 = strings.TrimSpace(street2)
	}
}

// WithCountry sets the country for the address
func WithCountry(country string) AddressOption {
	return func(a *Address) {
		a.country = strings.TrimSpace(country)
	}
}

// NewAddress creates a new Address with the required fields
// Street1 and city are required; state is normalized to its two-letter code
func NewAddress(street1, city, state, zip string, opts ...AddressOption) (Address, error) {
	street1 = strings.TrimSpace(street1)
	city = strings.TrimSpace(city)
	state = NormalizeState(state)
	zip = strings.TrimSpace(zip)

	if err := validateStreet(street1); err != nil {
		return Address{}, err
	}
	if err := validateCity(city); err != nil {
		return Address{}, err
	}
	if err := validateState(state); err != nil {
		return Address{}, err
	}
	if err := validateZip(zip); err != nil {
		return Address{}, err
	}

	addr := Address{
		street1: street1,
		city:    city,
		state:   state,
		zip:     zip,
		country: "USA", // Default country
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if len(addr.street2) > 200 {
		return Address{}, fmt.Errorf("street2 cannot exceed 200 characters")
	}
	if len(addr.country) > 100 {
		return Address{}, fmt.Errorf("country cannot exceed 100 characters")
	}

	return addr, nil
}

// NewAddressFull creates a new Address with all fields
func NewAddressFull(street1, street2, city, state, zip, country string) (Address, error) {
	opts := []AddressOption{WithStreet2(street2)}
	if strings.TrimSpace(country) != "" {
		opts = append(opts, WithCountry(country))
	}
	return NewAddress(street1, city, state, zip, opts...)
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(street1, city, state, zip string, opts ...AddressOption) Address {
	addr, err := NewAddress(street1, city, state, zip, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Street1 returns the first street line
func (a Address) Street1() string {
	return a.street1
}

// Street2 returns the second street line
func (a Address) Street2() string {
	return a.street2
}

// City returns the city
func (a Address) City() string {
	return a.city
}

// State returns the two-letter state code
func (a Address) State() string {
	return a.state
}

// Zip returns the ZIP code
func (a Address) Zip() string {
	return a.zip
}

// Country returns the country
func (a Address) Country() string {
	return a.country
}

// IsEmpty returns true if the address is empty (all fields are blank)
func (a Address) IsEmpty() bool {
	return a.street1 == "" && a.street2 == "" && a.city == "" && a.state == "" && a.zip == ""
}

// CityStateZip returns the last line of the address block
// Format: City, ST 12345
func (a Address) CityStateZip() string {
	if a.city == "" && a.state == "" && a.zip == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(a.city)
	if a.state != "" {
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.state)
	}
	if a.zip != "" {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(a.zip)
	}
	return sb.String()
}

// Lines returns the address as printable lines for envelopes and documents
func (a Address) Lines() []string {
	if a.IsEmpty() {
		return nil
	}

	lines := make([]string, 0, 4)
	if a.street1 != "" {
		lines = append(lines, a.street1)
	}
	if a.street2 != "" {
		lines = append(lines, a.street2)
	}
	if csz := a.CityStateZip(); csz != "" {
		lines = append(lines, csz)
	}
	return lines
}

// FullAddress returns the complete formatted address on one line
// Format: Street1, Street2, City, ST 12345
func (a Address) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, 3)
	if a.street1 != "" {
		parts = append(parts, a.street1)
	}
	if a.street2 != "" {
		parts = append(parts, a.street2)
	}
	if csz := a.CityStateZip(); csz != "" {
		parts = append(parts, csz)
	}
	return strings.Join(parts, ", ")
}

// String returns a string representation of the address
func (a Address) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a.street1 == other.street1 &&
		a.street2 == other.street2 &&
		a.city == other.city &&
		a.state == other.state &&
		a.zip == other.zip &&
		a.country == other.country
}

// SameState returns true if both addresses are in the same state
func (a Address) SameState(other Address) bool {
	return a.state == other.state
}

// addressJSON is used for JSON marshaling/unmarshaling
type addressJSON struct {
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Street1: a.street1,
		Street2: a.street2,
		City:    a.city,
		State:   a.state,
		Zip:     a.zip,
		Country: a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// Delegates to the NewAddressFull factory so the usual validation rules apply;
// a payload with all location fields blank yields EmptyAddress.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	// Allow empty addresses from JSON
	if v.Street1 == "" && v.Street2 == "" && v.City == "" && v.State == "" && v.Zip == "" {
		*a = EmptyAddress()
		return nil
	}

	addr, err := NewAddressFull(v.Street1, v.Street2, v.City, v.State, v.Zip, v.Country)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddressFromJSON creates an Address from JSON data with full validation
func ParseAddressFromJSON(data []byte) (Address, error) {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return Address{}, fmt.Errorf("failed to parse address JSON: %w", err)
	}

	// Allow empty addresses from JSON
	if v.Street1 == "" && v.Street2 == "" && v.City == "" && v.State == "" && v.Zip == "" {
		return EmptyAddress(), nil
	}

	return NewAddressFull(v.Street1, v.Street2, v.City, v.State, v.Zip, v.Country)
}

// Value implements driver.Valuer for database storage
// Stores as JSON string
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval.
// Delegates to UnmarshalJSON so validation rules are applied on the way in.
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	// Handle empty string
	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}

// Validation functions

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

func validateStreet(street string) error {
	if street == "" {
		return fmt.Errorf("street cannot be empty")
	}
	if len(street) > 200 {
		return fmt.Errorf("street cannot exceed 200 characters")
	}
	return nil
}

func validateCity(city string) error {
	if city == "" {
		return fmt.Errorf("city cannot be empty")
	}
	if len(city) > 100 {
		return fmt.Errorf("city cannot exceed 100 characters")
	}
	return nil
}

func validateState(state string) error {
	// State is optional, but if provided must be a known code
	if state == "" {
		return nil
	}
	if !IsValidUSState(state) {
		return fmt.Errorf("unknown state: %s", state)
	}
	return nil
}

func validateZip(zip string) error {
	// ZIP is optional, but if provided must be ZIP or ZIP+4
	if zip == "" {
		return nil
	}
	if !zipPattern.MatchString(zip) {
		return fmt.Errorf("invalid ZIP code: %s", zip)
	}
	return nil
}

// usStateNames maps full state names (lowercase) to their two-letter codes
var usStateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
	"district of columbia": "DC", "puerto rico": "PR",
}

// usStateCodes is the set of valid two-letter state codes
var usStateCodes = func() map[string]bool {
	codes := make(map[string]bool, len(usStateNames))
	for _, code := range usStateNames {
		codes[code] = true
	}
	return codes
}()

// IsValidUSState checks if the value is a known state code or full state name
func IsValidUSState(state string) bool {
	state = strings.TrimSpace(state)
	if usStateCodes[strings.ToUpper(state)] {
		return true
	}
	_, ok := usStateNames[strings.ToLower(state)]
	return ok
}

// NormalizeState normalizes a state to its two-letter code
// Full names are mapped ("Illinois" becomes "IL"); unknown values pass through trimmed
func NormalizeState(state string) string {
	state = strings.TrimSpace(state)
	if state == "" {
		return ""
	}

	upper := strings.ToUpper(state)
	if usStateCodes[upper] {
		return upper
	}

	if code, ok := usStateNames[strings.ToLower(state)]; ok {
		return code
	}

	return state
}
