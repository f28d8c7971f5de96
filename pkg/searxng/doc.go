// Package searxng searches a self-hosted SearXNG instance and extracts
// structured results from its HTML result page.
//
// The package has two parts:
//   - [Client] builds the browser-like POST request to {baseURL}/search,
//     submits it and validates the transport outcome.
//   - [Extract] parses the returned markup with goquery and produces an
//     ordered, bounded list of [Result] values.
//
// [Client.Search] composes both. Errors fall into three classes: invalid
// parameters ([api.ToolError]), transport failures ([TransportError]) and
// everything else. [ToToolError] maps any of them onto the tool error model.
package searxng
