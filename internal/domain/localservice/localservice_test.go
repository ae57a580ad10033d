package localservice

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/safeexplore/internal/domain/geo"
	"github.com/kailas-cloud/safeexplore/internal/pipeline"
)

func categories() []ServiceCategory {
	return []ServiceCategory{
		{ID: "healthcare", Name: "Healthcare", Count: 24, HasUpdates: true},
		{ID: "legal", Name: "Legal Services", Count: 12},
		{ID: "education", Name: "Education", Count: 18, HasUpdates: true},
		{ID: "government", Name: "Government Offices", Count: 8},
		{ID: "banking", Name: "Banking", Count: 15},
		{ID: "transportation", Name: "Transportation", Count: 32, HasUpdates: true},
	}
}

func services() []Service {
	return []Service{
		{ID: "1", Name: "City General Hospital", Category: "healthcare", DistanceKm: 0.8, Rating: 4.5, Open: true,
			Languages: []string{"English", "Spanish", "French"}, Booking: true, Location: geo.Point{Lat: 40.7589, Lng: -73.9851}},
		{ID: "2", Name: "Immigration Law Associates", Category: "legal", DistanceKm: 1.2, Rating: 4.8, Open: true,
			Languages: []string{"English", "Spanish", "Portuguese", "Chinese"}, Booking: true, Location: geo.Point{Lat: 40.7505, Lng: -73.9934}},
		{ID: "3", Name: "International Student Center", Category: "education", DistanceKm: 2.1, Rating: 4.3,
			Languages: []string{"English", "Chinese", "Korean", "Arabic"}, Location: geo.Point{Lat: 40.7282, Lng: -73.9942}},
		{ID: "4", Name: "Department of Motor Vehicles", Category: "government", DistanceKm: 1.5, Rating: 3.2, Open: true,
			Languages: []string{"English", "Spanish"}, Booking: true, Location: geo.Point{Lat: 40.7411, Lng: -74.0018}},
		{ID: "5", Name: "First National Bank", Category: "banking", DistanceKm: 0.9, Rating: 4.1, Open: true,
			Languages: []string{"English", "Spanish", "French"}, Location: geo.Point{Lat: 40.7614, Lng: -73.9776}},
		{ID: "6", Name: "Metro Transit Hub", Category: "transportation", DistanceKm: 0.5, Rating: 3.9, Open: true,
			Languages: []string{"English", "Spanish", "Chinese"}, Location: geo.Point{Lat: 40.7527, Lng: -73.9772}},
	}
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

func run(q Query) []string {
	spec, _ := q.SortSpec()
	got := pipeline.Select(q.Prepare(services()), Viewer(categories()), q.Criteria(), spec)
	ids := make([]string, len(got))
	for i, s := range got {
		ids[i] = s.ID
	}
	return ids
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"nearest first by default", Query{}, []string{"6", "1", "5", "2", "4", "3"}},
		{"category", Query{Category: "legal"}, []string{"2"}},
		{"search matches category name", Query{Search: "offices"}, []string{"4"}},
		{"languages any-of", Query{Languages: []string{"Korean", "Portuguese"}}, []string{"2", "3"}},
		{"open now", Query{OpenNow: boolPtr(true), Sort: SortName},
			[]string{"1", "4", "5", "2", "6"}},
		{"closed is expressible", Query{OpenNow: boolPtr(false)}, []string{"3"}},
		{"booking and distance", Query{HasBooking: boolPtr(true), MaxDistance: floatPtr(1.2)}, []string{"1", "2"}},
		{"rating desc", Query{Sort: SortRating, Order: "desc"}, []string{"2", "1", "3", "5", "6", "4"}},
		{"unknown sort keeps catalog order", Query{Sort: "price"}, []string{"1", "2", "3", "4", "5", "6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, run(tt.q)); diff != "" {
				t.Errorf("ids (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuery_Origin(t *testing.T) {
	origin := geo.Point{Lat: 40.7282, Lng: -73.9942}
	got := run(Query{Origin: &origin})
	if got[0] != "3" {
		t.Errorf("nearest to the student center = %q, want 3", got[0])
	}
}

func TestValidate(t *testing.T) {
	s := services()[0]
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Category = ""
	if s.Validate() == nil {
		t.Error("missing category should fail")
	}
	s = services()[0]
	s.Location = geo.Point{Lat: 100}
	if s.Validate() == nil {
		t.Error("invalid location should fail")
	}
}
