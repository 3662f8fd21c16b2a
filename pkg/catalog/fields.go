package catalog

// Format says how a resolved value is printed.
type Format int

const (
	FormatText Format = iota
	FormatDate
	FormatBool
)

// Field is a non-checklist value printed on the form.
type Field struct {
	Token  string
	Path   string
	Label  string
	Format Format
}

var fields = []Field{
	{"REPORT_NUMBER", "reportNumber", "Report Number", FormatText},
	{"DATE", "date", "Date", FormatDate},
	{"CINEMA_NAME", "cinemaName", "Cinema Name", FormatText},
	{"ADDRESS", "address", "Address", FormatText},
	{"LOCATION", "location", "Location", FormatText},
	{"CONTACT_DETAILS", "contactDetails", "Contact Details", FormatText},
	{"SCREEN_NUMBER", "screenNumber", "Screen No", FormatText},
	{"PROJECTOR_MODEL", "projectorModel", "Projector Model", FormatText},
	{"SERIAL_NUMBER", "serialNumber", "Serial Number", FormatText},
	{"PROJECTOR_RUNNING_HOURS", "projectorRunningHours", "Running Hours", FormatText},
	{"SOFTWARE_VERSION", "softwareVersion", "Software Version", FormatText},
	{"CONTENT_PLAYING_SERVER", "contentPlayingServer", "Content Playing Server", FormatText},

	{"LAMP_MAKE_MODEL", "lampInfo.makeModel", "Lamp Make and Model", FormatText},
	{"LAMP_TOTAL_HOURS", "lampInfo.totalRunningHours", "Lamp Total Running Hours", FormatText},
	{"LAMP_CURRENT_HOURS", "lampInfo.currentRunningHours", "Lamp Current Running Hours", FormatText},
	{"VOLT_P_VS_N", "voltageParameters.pVsN", "P vs N", FormatText},
	{"VOLT_P_VS_E", "voltageParameters.pVsE", "P vs E", FormatText},
	{"VOLT_N_VS_E", "voltageParameters.nVsE", "N vs E", FormatText},
	{"FL_BEFORE", "flMeasurements.before", "fL Before", FormatText},
	{"FL_AFTER", "flMeasurements.after", "fL After", FormatText},

	{"SW_W2K4K_MCGD", "softwareVersions.w2k4k.mcgd", "W2K/4K MCGD", FormatText},
	{"SW_W2K4K_FL", "softwareVersions.w2k4k.fl", "W2K/4K fL", FormatText},
	{"SW_W2K4K_X", "softwareVersions.w2k4k.x", "W2K/4K x", FormatText},
	{"SW_W2K4K_Y", "softwareVersions.w2k4k.y", "W2K/4K y", FormatText},
	{"SW_R2K4K_MCGD", "softwareVersions.r2k4k.mcgd", "R2K/4K MCGD", FormatText},
	{"SW_R2K4K_FL", "softwareVersions.r2k4k.fl", "R2K/4K fL", FormatText},
	{"SW_R2K4K_X", "softwareVersions.r2k4k.x", "R2K/4K x", FormatText},
	{"SW_R2K4K_Y", "softwareVersions.r2k4k.y", "R2K/4K y", FormatText},
	{"SW_G2K4K_MCGD", "softwareVersions.g2k4k.mcgd", "G2K/4K MCGD", FormatText},
	{"SW_G2K4K_FL", "softwareVersions.g2k4k.fl", "G2K/4K fL", FormatText},
	{"SW_G2K4K_X", "softwareVersions.g2k4k.x", "G2K/4K x", FormatText},
	{"SW_G2K4K_Y", "softwareVersions.g2k4k.y", "G2K/4K y", FormatText},

	{"SCREEN_SCOPE_HEIGHT", "screenInfo.scope.height", "Scope Height", FormatText},
	{"SCREEN_SCOPE_WIDTH", "screenInfo.scope.width", "Scope Width", FormatText},
	{"SCREEN_SCOPE_GAIN", "screenInfo.scope.gain", "Scope Gain", FormatText},
	{"SCREEN_FLAT_HEIGHT", "screenInfo.flat.height", "Flat Height", FormatText},
	{"SCREEN_FLAT_WIDTH", "screenInfo.flat.width", "Flat Width", FormatText},
	{"SCREEN_FLAT_GAIN", "screenInfo.flat.gain", "Flat Gain", FormatText},
	{"SCREEN_MAKE", "screenInfo.screenMake", "Screen Make", FormatText},
	{"THROW_DISTANCE", "screenInfo.throwDistance", "Throw Distance", FormatText},

	{"IMG_FOCUS_BORESITE", "imageEvaluation.focusBoresite", "Focus/boresite", FormatText},
	{"IMG_INTEGRATOR_POSITION", "imageEvaluation.integratorPosition", "Integrator Position", FormatText},
	{"IMG_SPOT_ON_SCREEN", "imageEvaluation.spotOnScreen", "Any Spot on the Screen after PPM", FormatText},
	{"IMG_SCREEN_CROPPING", "imageEvaluation.screenCropping", "Check Screen Cropping - FLAT and SCOPE", FormatText},
	{"IMG_CONVERGENCE", "imageEvaluation.convergenceChecked", "Convergence Checked", FormatText},
	{"IMG_CHANNELS", "imageEvaluation.channelsChecked", "Channels Checked - Scope, Flat, Alternative", FormatText},
	{"IMG_PIXEL_DEFECTS", "imageEvaluation.pixelDefects", "Pixel defects", FormatText},
	{"IMG_VIBRATION", "imageEvaluation.imageVibration", "Excessive image vibration", FormatText},
	{"IMG_LITELOC", "imageEvaluation.liteLoc", "LiteLOC", FormatText},

	{"CIE_WHITE_X", "cieColorAccuracy.white.x", "White x", FormatText},
	{"CIE_WHITE_Y", "cieColorAccuracy.white.y", "White y", FormatText},
	{"CIE_WHITE_FL", "cieColorAccuracy.white.fl", "White fL", FormatText},
	{"CIE_RED_X", "cieColorAccuracy.red.x", "Red x", FormatText},
	{"CIE_RED_Y", "cieColorAccuracy.red.y", "Red y", FormatText},
	{"CIE_RED_FL", "cieColorAccuracy.red.fl", "Red fL", FormatText},
	{"CIE_GREEN_X", "cieColorAccuracy.green.x", "Green x", FormatText},
	{"CIE_GREEN_Y", "cieColorAccuracy.green.y", "Green y", FormatText},
	{"CIE_GREEN_FL", "cieColorAccuracy.green.fl", "Green fL", FormatText},
	{"CIE_BLUE_X", "cieColorAccuracy.blue.x", "Blue x", FormatText},
	{"CIE_BLUE_Y", "cieColorAccuracy.blue.y", "Blue y", FormatText},
	{"CIE_BLUE_FL", "cieColorAccuracy.blue.fl", "Blue fL", FormatText},

	{"AIR_HCHO", "airPollutionLevel.hcho", "HCHO", FormatText},
	{"AIR_TVOC", "airPollutionLevel.tvoc", "TVOC", FormatText},
	{"AIR_PM1", "airPollutionLevel.pm1", "PM 1.0", FormatText},
	{"AIR_PM25", "airPollutionLevel.pm25", "PM 2.5", FormatText},
	{"AIR_PM10", "airPollutionLevel.pm10", "PM 10", FormatText},
	{"AIR_TEMPERATURE", "airPollutionLevel.temperature", "Temperature C", FormatText},
	{"AIR_HUMIDITY", "airPollutionLevel.humidity", "Humidity %", FormatText},

	{"ENGINEER_NAME", "engineer.name", "Engineer Name", FormatText},
	{"ENGINEER_PHONE", "engineer.phone", "Engineer Phone", FormatText},
	{"ENGINEER_EMAIL", "engineer.email", "Engineer Email", FormatText},
	{"REMARKS", "remarks", "Remarks", FormatText},
	{"REPLACEMENT_REQUIRED", "replacementRequired", "Replacement Required", FormatBool},
	{"FOLLOW_UP_REQUIRED", "followUpRequired", "Follow-up Required", FormatBool},
	{"CLIENT_SIGNED_BY", "clientSignedBy", "Client Name", FormatText},
}

// Fields returns the header and page-two fields in catalog order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldByPath finds the field stored at path.
func FieldByPath(path string) (Field, bool) {
	for _, f := range fields {
		if f.Path == path {
			return f, true
		}
	}
	return Field{}, false
}
