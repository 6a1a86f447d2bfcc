package types

import (
	"crypto/sha1"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DescID is a SHA-1 content hash identifying an automaton description (20 bytes).
type DescID [20]byte

// ComputeDescID computes the content hash: SHA-1("desc {len}\0{content}").
func ComputeDescID(content []byte) DescID {
	header := fmt.Sprintf("desc %d\x00", len(content))
	h := sha1.New()
	h.Write([]byte(header))
	h.Write(content)

	var id DescID
	copy(id[:], h.Sum(nil))
	return id
}

// Hex returns 40-character hex string.
func (id DescID) Hex() string {
	return hex.EncodeToString(id[:])
}

// String implements Stringer (returns Hex()).
func (id DescID) String() string {
	return id.Hex()
}

// ParseDescID parses 40-char hex string to DescID.
func ParseDescID(hexStr string) (DescID, error) {
	if len(hexStr) != 40 {
		return DescID{}, fmt.Errorf("invalid description ID length: expected 40, got %d", len(hexStr))
	}

	decoded, err := hex.DecodeString(hexStr)
	if err != nil {
		return DescID{}, fmt.Errorf("invalid hex string: %w", err)
	}

	var id DescID
	copy(id[:], decoded)
	return id, nil
}

// MarshalJSON implements json.Marshaler.
func (id DescID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *DescID) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}

	parsed, err := ParseDescID(hexStr)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}

// Value implements driver.Valuer for SQL serialization.
func (id DescID) Value() (driver.Value, error) {
	return id.Hex(), nil
}

// Scan implements sql.Scanner for SQL deserialization.
func (id *DescID) Scan(value interface{}) error {
	if value == nil {
		return fmt.Errorf("cannot scan nil into DescID")
	}

	var hexStr string
	switch v := value.(type) {
	case string:
		hexStr = v
	case []byte:
		hexStr = string(v)
	default:
		return fmt.Errorf("cannot scan type %T into DescID", value)
	}

	parsed, err := ParseDescID(hexStr)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}
