// Package noaa implements queries against the NOAA tides and currents
// datagetter endpoint. A query covers one station for one calendar year;
// the raw JSON response is returned so callers can archive it verbatim.
package noaa
