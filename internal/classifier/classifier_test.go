package classifier

import (
	"testing"
	"time"

	"github.com/ews-cloud/hawkins-county-commission-search/pkg/models"
)

var harvestTime = time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)

func TestInferType_URLWins(t *testing.T) {
	tests := []struct {
		name string
		url  string
		body string
		want models.DocType
	}{
		{"agenda in url", "https://x.com/docs/2023-agenda.pdf", "", models.TypeAgenda},
		{"minute in url", "https://x.com/docs/board-minutes.pdf", "", models.TypeMinutes},
		{"minutes plural in url", "https://x.com/minutes/jan.pdf", "", models.TypeMinutes},
		{"resolution in url", "https://x.com/resolution-2023-14.pdf", "", models.TypeResolution},
		{"url beats body", "https://x.com/agenda.pdf", "resolution number fourteen", models.TypeAgenda},
		{"case insensitive", "https://x.com/AGENDA.PDF", "", models.TypeAgenda},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferType(tt.url, tt.body); got != tt.want {
				t.Errorf("InferType(%q, %q) = %v, want %v", tt.url, tt.body, got, tt.want)
			}
		})
	}
}

func TestInferType_BodyOrderResolutionFirst(t *testing.T) {
	// The body cascade checks Resolution before Minutes before Agenda,
	// so a body mentioning all three classifies as Resolution.
	body := "agenda for approval of minutes and resolution 14"
	if got := InferType("https://x.com/doc.pdf", body); got != models.TypeResolution {
		t.Errorf("InferType = %v, want Resolution", got)
	}

	body = "approval of the minutes and the agenda"
	if got := InferType("https://x.com/doc.pdf", body); got != models.TypeMinutes {
		t.Errorf("InferType = %v, want Minutes", got)
	}
}

func TestInferType_DefaultsToAgenda(t *testing.T) {
	if got := InferType("https://x.com/doc.pdf", "nothing relevant here"); got != models.TypeAgenda {
		t.Errorf("InferType = %v, want Agenda default", got)
	}
}

func TestInferDate_BothURLFormatsAgree(t *testing.T) {
	want := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)

	ymd := InferDate("https://x.com/2023-05-01-agenda.pdf", "", harvestTime)
	mdy := InferDate("https://x.com/05-01-2023-agenda.pdf", "", harvestTime)

	if !ymd.Equal(want) {
		t.Errorf("ymd = %v, want %v", ymd, want)
	}
	if !mdy.Equal(want) {
		t.Errorf("mdy = %v, want %v", mdy, want)
	}
}

func TestInferDate_URLBeatsBody(t *testing.T) {
	got := InferDate("https://x.com/2023-05-01-agenda.pdf", "meeting held 12/25/2021", harvestTime)
	want := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want URL-derived %v", got, want)
	}
}

func TestInferDate_FallsBackToBody(t *testing.T) {
	got := InferDate("https://x.com/agenda.pdf", "meeting held 5/1/2023 at the courthouse", harvestTime)
	want := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInferDate_FallsBackToHarvestTime(t *testing.T) {
	got := InferDate("https://x.com/agenda.pdf", "no dates at all", harvestTime)
	want := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want harvest day %v", got, want)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("fallback date should be day precision, got %v", got)
	}
}

func TestInferDate_SlashSeparators(t *testing.T) {
	got := InferDate("https://x.com/doc.pdf", "adopted 2024/11/04 by the commission", harvestTime)
	want := time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInferMeeting(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"regular session", "the Regular Session convened at 9am", "Regular Session"},
		{"special called", "notice of SPECIAL CALLED meeting", "SPECIAL CALLED"},
		{"trigger without phrase", "held on a regular schedule", ""},
		{"no trigger", "ordinary business", ""},
		{"empty body", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferMeeting(tt.body); got != tt.want {
				t.Errorf("InferMeeting(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	res := Classify("https://x.com/2023-05-01-minutes.pdf",
		"Minutes of the Regular Session held May 1.", harvestTime)

	if res.Type != models.TypeMinutes {
		t.Errorf("Type = %v, want Minutes", res.Type)
	}
	if !res.Date.Equal(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", res.Date)
	}
	if res.Meeting != "Regular Session" {
		t.Errorf("Meeting = %q", res.Meeting)
	}
}
