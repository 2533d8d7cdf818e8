package store

import (
	"os"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// SeedIfMissing creates the data directory and writes demo rows for
// every dataset whose backing file does not exist yet. A file that is
// already present is never touched, whatever it contains, so repeated
// calls are no-ops after the first.
func (s *Store) SeedIfMissing() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	now := time.Now().Format(timeLayout)
	for _, seed := range []struct {
		ds   Dataset
		rows []Row
	}{
		{Users, seedUsers()},
		{Assets, seedAssets()},
		{Notifications, seedNotifications(now)},
		{RoundTemplates, seedRoundTemplates()},
		{RoundExecutions, nil}, // header-only until the first round is run
		{Incidents, seedIncidents(now)},
		{Permits, seedPermits(now)},
	} {
		if _, err := os.Stat(s.path(seed.ds)); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return err
		}
		if err := s.Save(seed.ds, Table{Columns: seed.ds.Columns, Rows: seed.rows}); err != nil {
			return err
		}
	}
	return nil
}

func seedUsers() []Row {
	return []Row{
		{"user_id": "op1", "name": "Operator 1", "role": "Operator", "area": "Area B Operations"},
		{"user_id": "op2", "name": "Operator 2", "role": "Operator", "area": "Area A Operations"},
		{"user_id": "sup1", "name": "Supervisor 1", "role": "Supervisor", "area": "Control Room"},
		{"user_id": "hse1", "name": "HSE 1", "role": "HSE", "area": "HSE"},
	}
}

func seedAssets() []Row {
	return []Row{
		{"tag": "V-210", "description": "Production line control valve", "area": "Area B"},
		{"tag": "P-101", "description": "Transfer pump", "area": "Area A"},
		{"tag": "TK-1203", "description": "Stabilized crude tank", "area": "Tank Farm"},
		{"tag": "K-301", "description": "Low pressure gas compressor", "area": "Compression"},
	}
}

func seedNotifications(now string) []Row {
	return []Row{
		{"id": "1", "created_at": now, "tag": "V-210", "title": "Check valve V-210",
			"reason": "Overpressure", "priority": "P1", "status": "Pending",
			"assigned_to": "Operator 1", "received_at": "", "closed_at": "", "evidence": ""},
		{"id": "2", "created_at": now, "tag": "P-101", "title": "Verify mechanical seal",
			"reason": "Drip observed", "priority": "P2", "status": "Pending",
			"assigned_to": "Operator 2", "received_at": "", "closed_at": "", "evidence": ""},
	}
}

func seedRoundTemplates() []Row {
	return []Row{
		{"template": "Compressor Round", "tag": "K-301", "variable": "Suction pressure [bar]", "lower_limit": "2.0", "upper_limit": "5.0"},
		{"template": "Compressor Round", "tag": "K-301", "variable": "Casing temperature [C]", "lower_limit": "20.0", "upper_limit": "80.0"},
		{"template": "Tank Round", "tag": "TK-1203", "variable": "Level [%]", "lower_limit": "10.0", "upper_limit": "85.0"},
		{"template": "Tank Round", "tag": "TK-1203", "variable": "Temperature [C]", "lower_limit": "10.0", "upper_limit": "60.0"},
	}
}

func seedIncidents(now string) []Row {
	return []Row{
		{"id": "1", "ts": now, "tag": "V-210", "title": "Near miss from overpressure",
			"severity": "Medium", "description": "Reading detected above threshold",
			"reported_by": "Operator 1", "status": "Open"},
	}
}

func seedPermits(now string) []Row {
	return []Row{
		{"id": "1", "requested_at": now, "type": "Hot Work", "requester": "Supervisor 1",
			"area": "Area B", "status": "Draft", "hse_approved": "No", "closed_at": "", "attachments": ""},
	}
}
