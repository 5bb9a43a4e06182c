// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ARRAY_BUFFER          = 0x8892
	BLEND                 = 0xbe2
	BYTE                  = 0x1400
	CLAMP_TO_EDGE         = 0x812f
	COLOR_BUFFER_BIT      = 0x4000
	COMPILE_STATUS        = 0x8b81
	DEPTH_BUFFER_BIT      = 0x100
	DEPTH_TEST            = 0xb71
	DST_ALPHA             = 0x304
	DST_COLOR             = 0x306
	DYNAMIC_DRAW          = 0x88e8
	ELEMENT_ARRAY_BUFFER  = 0x8893
	FALSE                 = 0
	FLOAT                 = 0x1406
	FRAGMENT_SHADER       = 0x8b30
	FRAMEBUFFER           = 0x8d40
	FRAMEBUFFER_BINDING   = 0x8ca6
	FUNC_ADD              = 0x8006
	FUNC_REVERSE_SUBTRACT = 0x800b
	FUNC_SUBTRACT         = 0x800a
	INFO_LOG_LENGTH       = 0x8b84
	INT                   = 0x1404
	INVALID_ENUM          = 0x500
	INVALID_OPERATION     = 0x502
	INVALID_VALUE         = 0x501
	LINEAR                = 0x2601
	LINES                 = 0x1
	LINE_STRIP            = 0x3
	LINK_STATUS           = 0x8b82
	MAX_TEXTURE_SIZE      = 0xd33
	NEAREST               = 0x2600
	NO_ERROR              = 0x0
	ONE                   = 0x1
	ONE_MINUS_DST_ALPHA   = 0x305
	ONE_MINUS_DST_COLOR   = 0x307
	ONE_MINUS_SRC_ALPHA   = 0x303
	ONE_MINUS_SRC_COLOR   = 0x301
	OUT_OF_MEMORY         = 0x505
	POINTS                = 0x0
	REPEAT                = 0x2901
	RGB                   = 0x1907
	RGBA                  = 0x1908
	SHORT                 = 0x1402
	SRC_ALPHA             = 0x302
	SRC_COLOR             = 0x300
	STATIC_DRAW           = 0x88e4
	STENCIL_BUFFER_BIT    = 0x400
	STREAM_DRAW           = 0x88e0
	TEXTURE0              = 0x84c0
	TEXTURE_2D            = 0xde1
	TEXTURE_MAG_FILTER    = 0x2800
	TEXTURE_MIN_FILTER    = 0x2801
	TEXTURE_WRAP_S        = 0x2802
	TEXTURE_WRAP_T        = 0x2803
	TRIANGLES             = 0x4
	TRIANGLE_STRIP        = 0x5
	TRUE                  = 1
	UNPACK_ALIGNMENT      = 0xcf5
	UNSIGNED_BYTE         = 0x1401
	UNSIGNED_INT          = 0x1405
	UNSIGNED_SHORT        = 0x1403
	VERSION               = 0x1f02
	VERTEX_SHADER         = 0x8b31
	ZERO                  = 0x0
)
