package nav

// Screen is one of the fixed set of app screens. Exactly one is current
// per session at any time.
type Screen string

const (
	ScreenHome            Screen = "home"
	ScreenBrowse          Screen = "browse"
	ScreenInbox           Screen = "inbox"
	ScreenOnboarding      Screen = "onboarding"
	ScreenCreateOffer     Screen = "create-offer"
	ScreenVendorDashboard Screen = "dashboard"
	ScreenLogin           Screen = "login"
	ScreenRoleSelection   Screen = "role-selection"
)

// screenPaths maps request paths to screens. Unknown paths fall through
// to Home in Navigate.
var screenPaths = map[string]Screen{
	"/":               ScreenHome,
	"/browse":         ScreenBrowse,
	"/inbox":          ScreenInbox,
	"/onboarding":     ScreenOnboarding,
	"/create-offer":   ScreenCreateOffer,
	"/dashboard":      ScreenVendorDashboard,
	"/login":          ScreenLogin,
	"/role-selection": ScreenRoleSelection,
}

func screenForPath(path string) (Screen, bool) {
	s, ok := screenPaths[path]
	return s, ok
}
