package types

import "testing"

func TestParseVehicleClass(t *testing.T) {
	cases := []struct {
		in      string
		want    VehicleClass
		wantErr bool
	}{
		{"SEDAN", VehicleSedan, false},
		{"sedan", VehicleSedan, false},
		{"  Suv ", VehicleSUV, false},
		{"HatchBack", VehicleHatchback, false},
		{"tempo traveller", VehicleTempoTraveller, false},
		{"tempo-traveller", VehicleTempoTraveller, false},
		{"", "", true},
		{"limo", "", true},
	}
	for _, tc := range cases {
		got, err := ParseVehicleClass(tc.in)
		if tc.wantErr {
			if err != ErrUnknownVehicleClass {
				t.Errorf("ParseVehicleClass(%q) err = %v, want ErrUnknownVehicleClass", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVehicleClass(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseVehicleClass(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
