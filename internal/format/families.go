package format

// zoneFamilies maps IANA zones of the Americas and Europe onto the zone
// used to present them.
var zoneFamilies = map[string]string{
	"America/Adak":                    "America/Adak",
	"America/Anchorage":               "America/Anchorage",
	"America/Anguilla":                "America/Puerto_Rico",
	"America/Antigua":                 "America/Puerto_Rico",
	"America/Araguaina":               "America/Sao_Paulo",
	"America/Argentina/Buenos_Aires":  "America/Sao_Paulo",
	"America/Argentina/Catamarca":     "America/Sao_Paulo",
	"America/Argentina/ComodRivadavia":"America/Sao_Paulo",
	"America/Argentina/Cordoba":       "America/Sao_Paulo",
	"America/Argentina/Jujuy":         "America/Sao_Paulo",
	"America/Argentina/La_Rioja":      "America/Sao_Paulo",
	"America/Argentina/Mendoza":       "America/Sao_Paulo",
	"America/Argentina/Rio_Gallegos":  "America/Sao_Paulo",
	"America/Argentina/Salta":         "America/Sao_Paulo",
	"America/Argentina/San_Juan":      "America/Sao_Paulo",
	"America/Argentina/San_Luis":      "America/Sao_Paulo",
	"America/Argentina/Tucuman":       "America/Sao_Paulo",
	"America/Argentina/Ushuaia":       "America/Sao_Paulo",
	"America/Aruba":                   "America/Puerto_Rico",
	"America/Asuncion":                "America/Puerto_Rico",
	"America/Atikokan":                "America/New_York",
	"America/Atka":                    "America/Adak",
	"America/Bahia":                   "America/Sao_Paulo",
	"America/Bahia_Banderas":          "America/Chicago",
	"America/Barbados":                "America/Puerto_Rico",
	"America/Belem":                   "America/Sao_Paulo",
	"America/Belize":                  "America/Chicago",
	"America/Blanc-Sablon":            "America/Puerto_Rico",
	"America/Boa_Vista":               "America/Puerto_Rico",
	"America/Bogota":                  "America/New_York",
	"America/Boise":                   "America/Denver",
	"America/Buenos_Aires":            "America/Sao_Paulo",
	"America/Cambridge_Bay":           "America/Denver",
	"America/Campo_Grande":            "America/Puerto_Rico",
	"America/Cancun":                  "America/New_York",
	"America/Caracas":                 "America/Puerto_Rico",
	"America/Catamarca":               "America/Sao_Paulo",
	"America/Cayenne":                 "America/Sao_Paulo",
	"America/Cayman":                  "America/New_York",
	"America/Chicago":                 "America/Chicago",
	"America/Chihuahua":               "America/Denver",
	"America/Coral_Harbour":           "America/New_York",
	"America/Cordoba":                 "America/Sao_Paulo",
	"America/Costa_Rica":              "America/Chicago",
	"America/Creston":                 "America/Denver",
	"America/Cuiaba":                  "America/Puerto_Rico",
	"America/Curacao":                 "America/Puerto_Rico",
	"America/Danmarkshavn":            "Europe/Belfast",
	"America/Dawson":                  "America/Denver",
	"America/Dawson_Creek":            "America/Denver",
	"America/Denver":                  "America/Denver",
	"America/Detroit":                 "America/New_York",
	"America/Dominica":                "America/Puerto_Rico",
	"America/Edmonton":                "America/Denver",
	"America/Eirunepe":                "America/New_York",
	"America/El_Salvador":             "America/Chicago",
	"America/Ensenada":                "America/Los_Angeles",
	"America/Fort_Nelson":             "America/Denver",
	"America/Fort_Wayne":              "America/New_York",
	"America/Fortaleza":               "America/Sao_Paulo",
	"America/Glace_Bay":               "America/Puerto_Rico",
	"America/Godthab":                 "America/Sao_Paulo",
	"America/Goose_Bay":               "America/Puerto_Rico",
	"America/Grand_Turk":              "America/New_York",
	"America/Grenada":                 "America/Puerto_Rico",
	"America/Guadeloupe":              "America/Puerto_Rico",
	"America/Guatemala":               "America/Chicago",
	"America/Guayaquil":               "America/New_York",
	"America/Guyana":                  "America/Puerto_Rico",
	"America/Halifax":                 "America/Puerto_Rico",
	"America/Havana":                  "America/New_York",
	"America/Hermosillo":              "America/Denver",
	"America/Indiana/Indianapolis":    "America/New_York",
	"America/Indiana/Knox":            "America/Chicago",
	"America/Indiana/Marengo":         "America/New_York",
	"America/Indiana/Petersburg":      "America/New_York",
	"America/Indiana/Tell_City":       "America/Chicago",
	"America/Indiana/Vevay":           "America/New_York",
	"America/Indiana/Vincennes":       "America/New_York",
	"America/Indiana/Winamac":         "America/New_York",
	"America/Indianapolis":            "America/New_York",
	"America/Inuvik":                  "America/Denver",
	"America/Iqaluit":                 "America/New_York",
	"America/Jamaica":                 "America/New_York",
	"America/Jujuy":                   "America/Sao_Paulo",
	"America/Juneau":                  "America/Anchorage",
	"America/Kentucky/Louisville":     "America/New_York",
	"America/Kentucky/Monticello":     "America/New_York",
	"America/Knox_IN":                 "America/Chicago",
	"America/Kralendijk":              "America/Puerto_Rico",
	"America/La_Paz":                  "America/Puerto_Rico",
	"America/Lima":                    "America/New_York",
	"America/Los_Angeles":             "America/Los_Angeles",
	"America/Louisville":              "America/New_York",
	"America/Lower_Princes":           "America/Puerto_Rico",
	"America/Maceio":                  "America/Sao_Paulo",
	"America/Managua":                 "America/Chicago",
	"America/Manaus":                  "America/Puerto_Rico",
	"America/Marigot":                 "America/Puerto_Rico",
	"America/Martinique":              "America/Puerto_Rico",
	"America/Matamoros":               "America/Chicago",
	"America/Mazatlan":                "America/Denver",
	"America/Mendoza":                 "America/Sao_Paulo",
	"America/Menominee":               "America/Chicago",
	"America/Merida":                  "America/Chicago",
	"America/Metlakatla":              "America/Anchorage",
	"America/Mexico_City":             "America/Chicago",
	"America/Miquelon":                "America/Sao_Paulo",
	"America/Moncton":                 "America/Puerto_Rico",
	"America/Monterrey":               "America/Chicago",
	"America/Montevideo":              "America/Sao_Paulo",
	"America/Montreal":                "America/New_York",
	"America/Montserrat":              "America/Puerto_Rico",
	"America/Nassau":                  "America/New_York",
	"America/New_York":                "America/New_York",
	"America/Nipigon":                 "America/New_York",
	"America/Nome":                    "America/Anchorage",
	"America/North_Dakota/Beulah":     "America/Chicago",
	"America/North_Dakota/Center":     "America/Chicago",
	"America/North_Dakota/New_Salem":  "America/Chicago",
	"America/Nuuk":                    "America/Sao_Paulo",
	"America/Ojinaga":                 "America/Denver",
	"America/Panama":                  "America/New_York",
	"America/Pangnirtung":             "America/New_York",
	"America/Paramaribo":              "America/Sao_Paulo",
	"America/Phoenix":                 "America/Denver",
	"America/Port-au-Prince":          "America/New_York",
	"America/Port_of_Spain":           "America/Puerto_Rico",
	"America/Porto_Acre":              "America/New_York",
	"America/Porto_Velho":             "America/Puerto_Rico",
	"America/Puerto_Rico":             "America/Puerto_Rico",
	"America/Punta_Arenas":            "America/Sao_Paulo",
	"America/Rainy_River":             "America/Chicago",
	"America/Rankin_Inlet":            "America/Chicago",
	"America/Recife":                  "America/Sao_Paulo",
	"America/Regina":                  "America/Chicago",
	"America/Resolute":                "America/Chicago",
	"America/Rio_Branco":              "America/New_York",
	"America/Rosario":                 "America/Sao_Paulo",
	"America/Santa_Isabel":            "America/Los_Angeles",
	"America/Santarem":                "America/Sao_Paulo",
	"America/Santiago":                "America/Puerto_Rico",
	"America/Santo_Domingo":           "America/Puerto_Rico",
	"America/Sao_Paulo":               "America/Sao_Paulo",
	"America/Shiprock":                "America/Denver",
	"America/Sitka":                   "America/Anchorage",
	"America/St_Barthelemy":           "America/Puerto_Rico",
	"America/St_Johns":                "Canada/Newfoundland",
	"America/St_Kitts":                "America/Puerto_Rico",
	"America/St_Lucia":                "America/Puerto_Rico",
	"America/St_Thomas":               "America/Puerto_Rico",
	"America/St_Vincent":              "America/Puerto_Rico",
	"America/Swift_Current":           "America/Chicago",
	"America/Tegucigalpa":             "America/Chicago",
	"America/Thule":                   "America/Puerto_Rico",
	"America/Thunder_Bay":             "America/New_York",
	"America/Tijuana":                 "America/Los_Angeles",
	"America/Toronto":                 "America/New_York",
	"America/Tortola":                 "America/Puerto_Rico",
	"America/Vancouver":               "America/Los_Angeles",
	"America/Virgin":                  "America/Puerto_Rico",
	"America/Whitehorse":              "America/Denver",
	"America/Winnipeg":                "America/Chicago",
	"America/Yakutat":                 "America/Anchorage",
	"America/Yellowknife":             "America/Denver",
	"Canada/Atlantic":                 "Canada/Atlantic",
	"Canada/Central":                  "Canada/Central",
	"Canada/Eastern":                  "Canada/Eastern",
	"Canada/Mountain":                 "Canada/Mountain",
	"Canada/Newfoundland":             "Canada/Newfoundland",
	"Canada/Pacific":                  "Canada/Pacific",
	"Canada/Saskatchewan":             "Canada/Saskatchewan",
	"Europe/Amsterdam":                "Europe/Amsterdam",
	"Europe/Andorra":                  "Europe/Amsterdam",
	"Europe/Athens":                   "Europe/Athens",
	"Europe/Belfast":                  "Europe/Belfast",
	"Europe/Belgrade":                 "Europe/Amsterdam",
	"Europe/Berlin":                   "Europe/Amsterdam",
	"Europe/Bratislava":               "Europe/Amsterdam",
	"Europe/Brussels":                 "Europe/Amsterdam",
	"Europe/Bucharest":                "Europe/Athens",
	"Europe/Budapest":                 "Europe/Amsterdam",
	"Europe/Busingen":                 "Europe/Amsterdam",
	"Europe/Chisinau":                 "Europe/Athens",
	"Europe/Copenhagen":               "Europe/Amsterdam",
	"Europe/Dublin":                   "Europe/Amsterdam",
	"Europe/Gibraltar":                "Europe/Amsterdam",
	"Europe/Guernsey":                 "Europe/Belfast",
	"Europe/Helsinki":                 "Europe/Athens",
	"Europe/Isle_of_Man":              "Europe/Belfast",
	"Europe/Jersey":                   "Europe/Belfast",
	"Europe/Kaliningrad":              "Europe/Athens",
	"Europe/Kiev":                     "Europe/Athens",
	"Europe/Lisbon":                   "Europe/Belfast",
	"Europe/Ljubljana":                "Europe/Amsterdam",
	"Europe/London":                   "Europe/Belfast",
	"Europe/Luxembourg":               "Europe/Amsterdam",
	"Europe/Madrid":                   "Europe/Amsterdam",
	"Europe/Malta":                    "Europe/Amsterdam",
	"Europe/Mariehamn":                "Europe/Athens",
	"Europe/Monaco":                   "Europe/Amsterdam",
	"Europe/Nicosia":                  "Europe/Athens",
	"Europe/Oslo":                     "Europe/Amsterdam",
	"Europe/Paris":                    "Europe/Amsterdam",
	"Europe/Podgorica":                "Europe/Amsterdam",
	"Europe/Prague":                   "Europe/Amsterdam",
	"Europe/Riga":                     "Europe/Athens",
	"Europe/Rome":                     "Europe/Amsterdam",
	"Europe/San_Marino":               "Europe/Amsterdam",
	"Europe/Sarajevo":                 "Europe/Amsterdam",
	"Europe/Skopje":                   "Europe/Amsterdam",
	"Europe/Sofia":                    "Europe/Athens",
	"Europe/Stockholm":                "Europe/Amsterdam",
	"Europe/Tallinn":                  "Europe/Athens",
	"Europe/Tirane":                   "Europe/Amsterdam",
	"Europe/Tiraspol":                 "Europe/Athens",
	"Europe/Uzhgorod":                 "Europe/Athens",
	"Europe/Vaduz":                    "Europe/Amsterdam",
	"Europe/Vatican":                  "Europe/Amsterdam",
	"Europe/Vienna":                   "Europe/Amsterdam",
	"Europe/Vilnius":                  "Europe/Athens",
	"Europe/Warsaw":                   "Europe/Amsterdam",
	"Europe/Zagreb":                   "Europe/Amsterdam",
	"Europe/Zaporozhye":               "Europe/Athens",
	"Europe/Zurich":                   "Europe/Amsterdam",
}
