// Package inject adds synthetic companions with known spectra into IFS
// master cubes, producing ground truth for algorithm evaluation.
//
// The companion is described by an injection Spec: polar position in the
// derotated frame, mean contrast against the star, model spectrum, and
// optionally the instrument spectral FWHM and a radial coronagraph
// transmission profile.
//
// IntoCube prepares the companion flux per spectral channel (line-spread
// convolution, resampling onto the star's wavelength grid, contrast
// scaling, transmission attenuation) and then shift-and-adds the
// normalized PSF template into every (time, channel) frame. The
// injection happens in the non-derotated cube: the per-frame position
// angle is theta minus the frame's derotation angle, so that the
// companion lands at (r, theta) once the frames are aligned North up.
package inject
