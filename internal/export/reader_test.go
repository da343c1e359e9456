package export

import (
	"strings"
	"testing"
	"time"

	apperrors "github.com/mereldawu/ipyhealth/errors"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<HealthData locale="en_US">
 <ExportDate value="2020-05-02 09:00:00 +0000"/>
 <Me HKCharacteristicTypeIdentifierDateOfBirth="1990-01-01"
     HKCharacteristicTypeIdentifierBiologicalSex="HKBiologicalSexFemale"
     HKCharacteristicTypeIdentifierBloodType="HKBloodTypeAPositive"
     HKCharacteristicTypeIdentifierFitzpatrickSkinType="HKFitzpatrickSkinTypeII"/>
 <Record type="HKQuantityTypeIdentifierStepCount" value="120"
     creationDate="2020-05-01 10:00:00 +0000"
     startDate="2020-05-01 10:00:00 +0000" endDate="2020-05-01 10:01:00 +0000">
  <MetadataEntry key="HKMetadataKeySyncVersion" value="1"/>
 </Record>
 <Workout workoutActivityType="HKWorkoutActivityTypeRunning" duration="30" durationUnit="min"
     creationDate="2020-05-01 10:35:00 +0000"
     startDate="2020-05-01 10:00:00 +0000" endDate="2020-05-01 10:30:00 +0000"/>
 <ClinicalRecord type="something"/>
</HealthData>
`

func keepRecords(tag string) bool {
	return tag == "Record" || tag == "Workout" || tag == "ActivitySummary"
}

func TestRead(t *testing.T) {
	doc, err := Read(strings.NewReader(sampleExport), keepRecords)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(doc.Elements))
	}

	rec := doc.Elements[0]
	if rec.Tag != "Record" {
		t.Errorf("expected Record first, got %s", rec.Tag)
	}
	if v, _ := rec.Attr("value"); v != "120" {
		t.Errorf("expected value attr 120, got %q", v)
	}
	if rec.Type() != "HKQuantityTypeIdentifierStepCount" {
		t.Errorf("wrong type attr: %q", rec.Type())
	}

	if doc.Elements[1].Type() != "HKWorkoutActivityTypeRunning" {
		t.Errorf("wrong workout type attr: %q", doc.Elements[1].Type())
	}
}

func TestRead_Info(t *testing.T) {
	doc, err := Read(strings.NewReader(sampleExport), keepRecords)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := doc.Info
	if info.BiologicalSex != "Female" {
		t.Errorf("expected biological sex Female, got %q", info.BiologicalSex)
	}
	if info.BloodType != "APositive" {
		t.Errorf("expected blood type APositive, got %q", info.BloodType)
	}
	if info.SkinType != "II" {
		t.Errorf("expected skin type II, got %q", info.SkinType)
	}
	if info.DateOfBirth != "1990-01-01" {
		t.Errorf("expected date of birth kept verbatim, got %q", info.DateOfBirth)
	}

	wantDate := time.Date(2020, 5, 2, 9, 0, 0, 0, time.UTC)
	if !info.ExportDate.Equal(wantDate) {
		t.Errorf("expected export date %v, got %v", wantDate, info.ExportDate)
	}
}

func TestRead_Malformed(t *testing.T) {
	_, err := Read(strings.NewReader("<HealthData><Record"), keepRecords)
	if !apperrors.Is(err, apperrors.ErrMalformedExport) {
		t.Errorf("expected ErrMalformedExport, got %v", err)
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(t.TempDir()+"/export.xml", keepRecords)
	if !apperrors.Is(err, apperrors.ErrExportMissing) {
		t.Errorf("expected ErrExportMissing, got %v", err)
	}
}
