package checks

import "github.com/sells-group/takeoff-cli/internal/model"

func electricalPlan(bp model.Blueprint, _ model.ElementSet) []model.Warning {
	p := bp.Electrical
	if p == nil {
		return nil
	}

	var out []model.Warning
	if !p.PowerPoints {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingPlanDetail, locElectrical,
			"power points are not marked",
			"an electrician cannot be booked without exact point locations",
			"request a detailed electrical plan marking every point"))
	}
	if !p.HeightSpecifications {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingPlanDetail, locElectrical,
			"point heights are not specified",
			"mounting heights cannot be set, especially in the kitchen",
			"request a height schedule for every electrical point"))
	}
	if !p.MainPanel {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingPlanDetail, locElectrical,
			"main panel location and size are missing",
			"panel preparation cannot be planned",
			"request the panel location and size from the designer"))
	}
	if !p.Grounding {
		out = append(out, warn(model.SeverityMedium, model.CodeMissingPlanDetail, locElectrical,
			"grounding system is not described",
			"electrical safety issues are possible",
			"request grounding system details"))
	}
	return out
}

func plumbingPlan(bp model.Blueprint, _ model.ElementSet) []model.Warning {
	p := bp.Plumbing
	if p == nil {
		return nil
	}

	var out []model.Warning
	if !p.WaterPoints {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingPlanDetail, locPlumbing,
			"water points are not marked",
			"a plumber cannot be booked without exact point locations",
			"request a detailed plumbing plan marking every water point"))
	}
	if !p.Sewage {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingPlanDetail, locPlumbing,
			"sewage system is not described",
			"sewer connections cannot be planned",
			"request the sewer pipe route and manhole locations"))
	}
	if !p.FloorSlopes {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingPlanDetail, locPlumbing,
			"wet-room floor slopes are missing",
			"wet-room tiling cannot be laid correctly",
			"request slope and drain details for every wet room"))
	}
	if !p.PipeSizes {
		out = append(out, warn(model.SeverityMedium, model.CodeMissingPlanDetail, locPlumbing,
			"pipe diameters are not specified",
			"matching materials cannot be ordered",
			"request pipe diameters for every system"))
	}
	return out
}

// missingDimensions applies to architectural drawings. Drawings that carry
// pre-recognized elements do not need overall dimensions.
func missingDimensions(bp model.Blueprint, es model.ElementSet) []model.Warning {
	if discipline(bp) != model.DisciplineArchitectural {
		return nil
	}

	var out []model.Warning
	if bp.Elements == nil {
		if bp.Width == 0 || bp.Length == 0 {
			out = append(out, warn(model.SeverityCritical, model.CodeMissingDimension, locArchitectural,
				"overall building dimensions are missing; defaults were assumed",
				"quantities cannot be computed accurately",
				"request a plan with exact overall dimensions"))
		}
		if bp.Height == 0 {
			out = append(out, warn(model.SeverityHigh, model.CodeMissingDimension, locArchitectural,
				"heights are missing; a default height was assumed",
				"drywall quantities for walls cannot be computed accurately",
				"request heights for every space"))
		}
	}
	if !bp.Dimensions.Rooms {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingDimension, locArchitectural,
			"room dimensions are missing",
			"tiling and drywall quantities cannot be computed accurately",
			"request a plan with dimensions for every room"))
	}
	if !bp.Dimensions.Openings {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingDimension, locArchitectural,
			"window and door dimensions are missing",
			"doors and windows cannot be ordered",
			"request exact dimensions for every opening"))
	}
	if es.Stairs.Count > 0 && !bp.Dimensions.Stairs {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingDimension, locArchitectural,
			"stair dimensions are missing",
			"stairs cannot be ordered or built",
			"request a stair detail with full dimensions"))
	}
	return out
}

func specialDetails(bp model.Blueprint, es model.ElementSet) []model.Warning {
	if discipline(bp) != model.DisciplineArchitectural {
		return nil
	}

	var out []model.Warning
	if es.SpecialRooms.Shelter.Count > 0 && !bp.Details.Shelter {
		out = append(out, warn(model.SeverityCritical, model.CodeMissingDetail, locArchitectural,
			"shelter details are missing",
			"the shelter window and filtration cabinet cannot be ordered",
			"request a complete shelter detail with every dimension"))
	}
	if es.SpecialRooms.Kitchen.Count > 0 && !bp.Details.Kitchen {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingDetail, locArchitectural,
			"kitchen elevations are missing",
			"kitchen electrical and plumbing points cannot be planned",
			"request full kitchen elevations with point locations"))
	}
	if es.SpecialRooms.Bathroom.Count > 0 && !bp.Details.Bathroom {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingDetail, locArchitectural,
			"wet-room elevations are missing",
			"cladding and wet-room points cannot be planned",
			"request full elevations for every wet room"))
	}
	if es.Roofs.TotalArea > 0 && !bp.Details.Roof {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingDetail, locArchitectural,
			"roof details are missing",
			"roof sealing and construction cannot be planned",
			"request complete roof details"))
	}
	if es.Stairs.Count > 0 && !bp.Details.Stairs {
		out = append(out, warn(model.SeverityHigh, model.CodeMissingDetail, locArchitectural,
			"stair details are missing",
			"stairs cannot be built without full details",
			"request complete stair details"))
	}
	return out
}
