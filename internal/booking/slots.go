package booking

import (
	"hash/fnv"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

var (
	morningTimes   = []string{"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM"}
	afternoonTimes = []string{"12:00 PM", "12:30 PM", "1:00 PM", "1:30 PM", "2:00 PM", "2:30 PM", "3:00 PM", "3:30 PM", "4:00 PM", "4:30 PM"}
	eveningTimes   = []string{"5:00 PM", "5:30 PM", "6:00 PM", "6:30 PM", "7:00 PM", "7:30 PM"}
)

// bookedPercent is the share of slots reported as taken.
const bookedPercent = 30

// Availability decides whether a slot is already taken.
type Availability interface {
	Booked(providerID int, date time.Time, slot string) bool
}

// AvailabilityFunc adapts a plain function to Availability.
type AvailabilityFunc func(providerID int, date time.Time, slot string) bool

func (f AvailabilityFunc) Booked(providerID int, date time.Time, slot string) bool {
	return f(providerID, date, slot)
}

// SeededAvailability answers from a hash of (seed, provider, date, slot), so
// the same slot reports the same state on every render.
type SeededAvailability struct {
	seed int64
}

func NewSeededAvailability(seed int64) *SeededAvailability {
	return &SeededAvailability{seed: seed}
}

func (a *SeededAvailability) Booked(providerID int, date time.Time, slot string) bool {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.FormatInt(a.seed, 10)))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(strconv.Itoa(providerID)))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(date.Format(dateLayout)))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(slot))
	return h.Sum64()%100 < bookedPercent
}

// RandomAvailability re-rolls every slot on each call, like the legacy
// booking page did on every entry into the time step.
type RandomAvailability struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomAvailability(src rand.Source) *RandomAvailability {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &RandomAvailability{rng: rand.New(src)}
}

func (a *RandomAvailability) Booked(int, time.Time, string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.Float64() > 0.7
}

// NewAvailability selects the slot source by name ("random" or "deterministic").
func NewAvailability(mode string, seed int64) Availability {
	if mode == "random" {
		return NewRandomAvailability(nil)
	}
	return NewSeededAvailability(seed)
}

// RenderSlots lists the 22 slots of a day in display order.
func RenderSlots(a Availability, providerID int, date time.Time) []Slot {
	slots := make([]Slot, 0, len(morningTimes)+len(afternoonTimes)+len(eveningTimes))
	add := func(p Period, times []string) {
		for _, t := range times {
			slots = append(slots, Slot{Time: t, Period: p, Booked: a.Booked(providerID, date, t)})
		}
	}
	add(PeriodMorning, morningTimes)
	add(PeriodAfternoon, afternoonTimes)
	add(PeriodEvening, eveningTimes)
	return slots
}

// SlotGroup is one column of the time picker.
type SlotGroup struct {
	Period Period `json:"period"`
	Label  string `json:"label"`
	Slots  []Slot `json:"slots"`
}

var periodLabels = map[Period]string{
	PeriodMorning:   "Morning (9 AM - 12 PM)",
	PeriodAfternoon: "Afternoon (12 PM - 5 PM)",
	PeriodEvening:   "Evening (5 PM - 8 PM)",
}

// GroupSlots splits rendered slots into morning, afternoon and evening.
func GroupSlots(slots []Slot) []SlotGroup {
	groups := []SlotGroup{
		{Period: PeriodMorning, Label: periodLabels[PeriodMorning]},
		{Period: PeriodAfternoon, Label: periodLabels[PeriodAfternoon]},
		{Period: PeriodEvening, Label: periodLabels[PeriodEvening]},
	}
	for _, s := range slots {
		for i := range groups {
			if groups[i].Period == s.Period {
				groups[i].Slots = append(groups[i].Slots, s)
			}
		}
	}
	return groups
}

func findSlot(slots []Slot, t string) (Slot, bool) {
	for _, s := range slots {
		if s.Time == t {
			return s, true
		}
	}
	return Slot{}, false
}
