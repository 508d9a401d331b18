// Package spectrum provides companion and stellar spectra as sampled
// (wavelength, flux) sequences, plus the preparation steps needed before
// a spectrum can be injected into an IFU cube:
//
//   - Gaussian line-spread convolution to the instrument's spectral FWHM
//   - resampling onto the instrument wavelength grid
//   - flux scaling to a requested mean contrast against a star spectrum
//
// Wavelengths are in microns throughout; fluxes are in arbitrary linear
// units. Spectral FWHM values are given in nanometers, matching the
// usual instrument specification sheets.
//
// Common workflows:
//   - Resample(instrWl, model, WithFWHM(fwhmNm))
//   - ScaleToContrast(companion, star, meanContrast)
package spectrum
