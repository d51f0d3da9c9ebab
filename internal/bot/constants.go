package bot

// Commands understood by the bot.
const (
	CmdStart      = "start"
	CmdHelp       = "help"
	CmdCalc       = "calc"
	CmdDimensions = "misure"
	CmdCMYK       = "cmyk"
	CmdWhite      = "bianco"
	CmdMargin     = "margine"
	CmdRecalc     = "calcola"
	CmdReport     = "report"
	CmdExport     = "export"
	CmdParams     = "parametri"
	CmdSetParams  = "imposta"
	CmdStatus     = "stato"
)

// Inline keyboard callback prefixes.
const (
	CallbackCMYK   = "cmyk:"
	CallbackWhite  = "bianco:"
	CallbackRecalc = "calcola"
	CallbackReport = "report"
)

const reportTitle = "Report Calcolo Area, Consumi e Costi"
