package idgen

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// ============================================================================
// Snowflake ID generator
// ============================================================================
//
// Record identifiers must be:
//   1. globally unique        - never reused across restarts
//   2. roughly time-ordered   - friendly to database indexes
//   3. cheap to generate      - no round trip to the store
//   4. opaque to callers      - business volume is not readable from an id
//
// Layout (64 bit):
//
//   0 - 41 bit timestamp - 10 bit worker id - 12 bit sequence
//   |   |                  |                  |
//   |   |                  |                  +-- per-millisecond counter (0-4095)
//   |   |                  +-- worker id (0-1023)
//   |   +-- millisecond timestamp (~69 years of headroom)
//   +-- sign bit, always 0
//
// ============================================================================

const (
	epoch          = int64(1704067200000) // 2024-01-01 00:00:00 UTC
	workerIDBits   = 10
	sequenceBits   = 12
	maxWorkerID    = -1 ^ (-1 << workerIDBits)
	maxSequence    = -1 ^ (-1 << sequenceBits)
	workerIDShift  = sequenceBits
	timestampShift = sequenceBits + workerIDBits
)

// Snowflake generates monotonically increasing 64-bit ids.
type Snowflake struct {
	mu        sync.Mutex
	timestamp int64
	workerID  int64
	sequence  int64
}

var (
	defaultGenerator *Snowflake
	once             sync.Once
)

// Init sets up the default generator.
func Init(workerID int64) {
	once.Do(func() {
		if workerID < 0 || workerID > maxWorkerID {
			log.Fatalf("workerID must be between 0 and %d", maxWorkerID)
		}
		defaultGenerator = &Snowflake{
			workerID:  workerID,
			timestamp: 0,
			sequence:  0,
		}
	})
}

// NextID returns the next raw id.
func NextID() int64 {
	if defaultGenerator == nil {
		Init(1)
	}
	return defaultGenerator.Generate()
}

// Generate produces one id.
func (s *Snowflake) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()

	if now == s.timestamp {
		s.sequence = (s.sequence + 1) & maxSequence
		if s.sequence == 0 {
			// sequence exhausted for this millisecond, spin to the next one
			for now <= s.timestamp {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		s.sequence = 0
	}

	s.timestamp = now

	id := ((now - epoch) << timestampShift) |
		(s.workerID << workerIDShift) |
		s.sequence

	return id
}

// withPrefix renders an id as PREFIX + yyyymmddhhmmss + last 8 digits of the
// snowflake id. Every record id in the system carries its entity prefix so a
// bare id in a log line is self-describing.
func withPrefix(prefix string) string {
	id := NextID()
	timestamp := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%08d", prefix, timestamp, id%100000000)
}

// GenerateCustomerID returns a customer id, e.g. CUS2024011514305212345678.
func GenerateCustomerID() string { return withPrefix("CUS") }

// GenerateCompanyID returns a company id.
func GenerateCompanyID() string { return withPrefix("CMP") }

// GenerateTransactionID returns a ledger transaction id.
func GenerateTransactionID() string { return withPrefix("TXN") }

// GenerateBillID returns a bill id. Distinct from the human-facing bill
// serial, which is a sequential counter owned by the settings row.
func GenerateBillID() string { return withPrefix("BIL") }

// GenerateBillItemID returns a bill line item id.
func GenerateBillItemID() string { return withPrefix("BLI") }

// GenerateProductID returns a product id.
func GenerateProductID() string { return withPrefix("PRD") }

// GenerateHistoryID returns an audit history entry id.
func GenerateHistoryID() string { return withPrefix("HIS") }

// GenerateSettingsID returns the settings row id.
func GenerateSettingsID() string { return withPrefix("SET") }
