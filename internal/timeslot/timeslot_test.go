package timeslot

import "testing"

func TestTimeToMinutes(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:30": 570,
		"23:59": 1439,
		"24:00": 1440,
	}
	for in, want := range cases {
		if got := TimeToMinutes(in); got != want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestMinutesToTime_Wraps(t *testing.T) {
	cases := map[int]string{
		0:    "00:00",
		570:  "09:30",
		1439: "23:59",
		1440: "00:00",
		1500: "01:00",
		-30:  "23:30",
	}
	for in, want := range cases {
		if got := MinutesToTime(in); got != want {
			t.Errorf("MinutesToTime(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		if got := TimeToMinutes(MinutesToTime(m)); got != m {
			t.Fatalf("round trip of %d = %d", m, got)
		}
	}
}

func TestGenerateTimeSlots(t *testing.T) {
	slots := GenerateTimeSlots(6, 24, 30)
	if len(slots) != 36 {
		t.Fatalf("len = %d, want 36", len(slots))
	}
	if slots[0] != "06:00" {
		t.Errorf("first = %q, want 06:00", slots[0])
	}
	if slots[len(slots)-1] != "23:30" {
		t.Errorf("last = %q, want 23:30", slots[len(slots)-1])
	}
}

func TestGenerateTimeSlots_NonPositiveInterval(t *testing.T) {
	if got := GenerateTimeSlots(6, 24, 0); len(got) != 0 {
		t.Errorf("zero interval produced %d slots", len(got))
	}
	if got := GenerateTimeSlots(10, 8, 30); len(got) != 0 {
		t.Errorf("inverted bounds produced %d slots", len(got))
	}
}

func TestSlots_Restartable(t *testing.T) {
	seq := Slots(8, 10, 60)
	for i := 0; i < 2; i++ {
		var got []string
		for s := range seq {
			got = append(got, s)
		}
		if len(got) != 2 || got[0] != "08:00" || got[1] != "09:00" {
			t.Fatalf("pass %d: got %v", i, got)
		}
	}
}

func TestFormatTimeDisplay(t *testing.T) {
	cases := map[string]string{
		"00:00": "12:00 AM",
		"09:05": "9:05 AM",
		"12:00": "12:00 PM",
		"13:30": "1:30 PM",
		"23:59": "11:59 PM",
		"24:00": "12:00 AM",
		"":      "",
		"bogus": "bogus",
	}
	for in, want := range cases {
		if got := FormatTimeDisplay(in); got != want {
			t.Errorf("FormatTimeDisplay(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseClock(t *testing.T) {
	valid := []string{"00:00", "07:45", "23:59", "24:00"}
	for _, v := range valid {
		if _, err := ParseClock(v); err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", v, err)
		}
	}
	invalid := []string{"", "7:45", "24:30", "12:60", "ab:cd", "1200"}
	for _, v := range invalid {
		if _, err := ParseClock(v); err == nil {
			t.Errorf("ParseClock(%q) should fail", v)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	if got := AddMinutes("10:00", 60); got != "11:00" {
		t.Errorf("AddMinutes = %q, want 11:00", got)
	}
	if got := AddMinutes("23:30", 60); got != "24:00" {
		t.Errorf("AddMinutes past midnight = %q, want 24:00", got)
	}
}
