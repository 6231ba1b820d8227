package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCheck    = "\uf00c" // check
	IconX        = "\uf00d" // x
	IconWarning  = "\uf071" // warning
	IconInfo     = "\uf05a" // info
	IconTrash    = "\uf1f8" // trash
	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconLogs     = "\uf0f6" // file-text
	IconLayout   = "\uf0db" // columns
	IconClock    = "\uf017" // clock
	IconEye      = "\uf06e" // eye
	IconEyeSlash = "\uf070" // eye-slash
	IconImport   = "\uf019" // download
)
