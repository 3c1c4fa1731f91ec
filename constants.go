package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeTextInput
	ModeBackgroundInput
	ModeFileInput
	ModeHelp
)

type Panel int

const (
	PanelText Panel = iota
	PanelStickers
)

// Native surface size (16:9).
const (
	canvasWidth  = 1280
	canvasHeight = 720
)

// Hit-testing.
const (
	grabMargin       = 30.0
	textHitboxWidth  = 640.0
	textHitboxHeight = 240.0
)

// Selection highlight.
const (
	highlightColor   = "#ef4444"
	highlightWidth   = 4.0
	highlightPadding = 10.0
	highlightDash    = 10.0
	highlightGap     = 5.0
)

// Drop shadow. The blur sigma is half of shadowBlur.
const (
	shadowBlur    = 15.0
	shadowOffsetX = 8
	shadowOffsetY = 8
)

const decorationStrokeRatio = 0.15

const (
	defaultFontFamily   = "Black Han Sans"
	defaultFontSize     = 160
	defaultStrokeColor  = "#000000"
	defaultStrokeWidth  = 20
	defaultLineHeight   = 1.1
	defaultTextColor    = "#ffffff"
	defaultStickerSize  = 200
	defaultOutlineColor = "#000000"
	defaultExportName   = "youtube-thumbnail-final.png"
)

// Editor control ranges. The core never enforces these.
const (
	minFontSize    = 50
	maxFontSize    = 400
	minStickerSize = 50
	maxStickerSize = 800
	minRotation    = -180
	maxRotation    = 180
)
