package app

import "context"

func (s Service) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	layout, err := ResolveLayout(req.LayoutRequest)
	if err != nil {
		return ScanResult{}, err
	}
	records, issues, err := s.NewScanner(layout).Scan(ctx, layout.DropinsDir)
	if err != nil {
		return ScanResult{}, err
	}
	return ScanResult{
		DropinsDir: layout.DropinsDir,
		Records:    records,
		Issues:     issues,
	}, nil
}
