// Package render is a small software 3D renderer for the demo scene.
//
// Pipeline (fixed):
//
//	Draw queue → Model/View/Projection → Near reject → Rasterization → Target.
//
// Draw calls are plain values tagged with a Kind. A frame submits any number of
// them and Render dispatches the whole queue through one switch, so adding a
// pipeline variant means adding a Kind and a case, not a new type.
//
// The renderer draws into a caller-provided Target and reuses its depth buffer
// and queue between frames.
package render
