package vlist

// Semigraphics provides easy access to Unicode characters for drawing.
// Using strings with \u escapes to keep the source ASCII-safe.
const (
	// General Punctuation U+2000-U+206F
	SemigraphicsHorizontalEllipsis = "\u2026" // …

	// Box Drawing U+2500-U+257F
	BoxDrawingsLightHorizontal      = "\u2500" // ─
	BoxDrawingsHeavyHorizontal      = "\u2501" // ━
	BoxDrawingsLightVertical        = "\u2502" // │
	BoxDrawingsHeavyVertical        = "\u2503" // ┃
	BoxDrawingsLightDownAndRight    = "\u250c" // ┌
	BoxDrawingsHeavyDownAndRight    = "\u250f" // ┏
	BoxDrawingsLightDownAndLeft     = "\u2510" // ┐
	BoxDrawingsHeavyDownAndLeft     = "\u2513" // ┓
	BoxDrawingsLightUpAndRight      = "\u2514" // └
	BoxDrawingsHeavyUpAndRight      = "\u2517" // ┗
	BoxDrawingsLightUpAndLeft       = "\u2518" // ┘
	BoxDrawingsHeavyUpAndLeft       = "\u251b" // ┛
	BoxDrawingsDoubleHorizontal     = "\u2550" // ═
	BoxDrawingsDoubleVertical       = "\u2551" // ║
	BoxDrawingsDoubleDownAndRight   = "\u2554" // ╔
	BoxDrawingsDoubleDownAndLeft    = "\u2557" // ╗
	BoxDrawingsDoubleUpAndRight     = "\u255a" // ╚
	BoxDrawingsDoubleUpAndLeft      = "\u255d" // ╝
	BoxDrawingsLightArcDownAndRight = "\u256d" // ╭
	BoxDrawingsLightArcDownAndLeft  = "\u256e" // ╮
	BoxDrawingsLightArcUpAndLeft    = "\u256f" // ╯
	BoxDrawingsLightArcUpAndRight   = "\u2570" // ╰

	// Block Elements U+2580-U+259F
	BlockUpperHalfBlock       = "\u2580" // ▀
	BlockLowerOneEighthBlock  = "\u2581" // ▁
	BlockLowerOneQuarterBlock = "\u2582" // ▂
	BlockLowerThreeEighths    = "\u2583" // ▃
	BlockLowerHalfBlock       = "\u2584" // ▄
	BlockLowerFiveEighths     = "\u2585" // ▅
	BlockLowerThreeQuarters   = "\u2586" // ▆
	BlockLowerSevenEighths    = "\u2587" // ▇
	BlockFullBlock            = "\u2588" // █
	BlockUpperOneEighthBlock  = "\u2594" // ▔
)
