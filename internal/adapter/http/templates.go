package http

// ── Base layout ───────────────────────────────────────────────────────────────

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#f6f8fa;color:#1f2328;font-size:14px;line-height:1.5;display:flex;min-height:100vh}
aside{width:300px;flex-shrink:0;background:#fff;border-right:1px solid #d0d7de;padding:16px}
aside h2{font-size:18px;margin-bottom:12px}
aside h3{font-size:13px;font-weight:600;color:#59636e;text-transform:uppercase;letter-spacing:.05em;margin:16px 0 6px}
aside select{width:100%;min-height:96px;border:1px solid #d0d7de;border-radius:4px;padding:4px}
aside input[type=range]{width:100%}
aside button{margin-top:16px;background:#0969da;border:none;color:#fff;padding:6px 14px;border-radius:4px;cursor:pointer}
aside .note{margin-top:24px;font-size:12px;color:#59636e}
.info{background:#ddf4ff;border:1px solid #54aeff66;border-radius:6px;padding:8px 12px}
main{flex:1;padding:16px 24px;overflow-x:auto}
h1{font-size:24px;margin-bottom:8px}
h2.sub{font-size:18px;margin:20px 0 8px}
.caption{margin-bottom:12px}
.dim{color:#59636e;font-size:12px}
table{width:100%;border-collapse:collapse;font-size:12px;background:#fff}
th{text-align:left;padding:6px 8px;border-bottom:1px solid #d0d7de;color:#59636e;font-weight:600;white-space:nowrap}
td{padding:4px 8px;border-bottom:1px solid #eaeef2;vertical-align:top}
tr:hover td{background:#f6f8fa}
#map{height:480px;border:1px solid #d0d7de;border-radius:6px}
</style>
</head>
<body>
{{template "content" .}}
</body>
</html>{{end}}
`

// ── Dashboard ─────────────────────────────────────────────────────────────────

const tmplDashboard = `
{{define "content"}}
<aside>
<h2>Parâmetros</h2>
<div class="info">{{.View.Summary}}</div>
<form method="get" action="/">
<h3>Ano</h3>
<label for="year">Escolha o ano desejado: <output id="year-out">{{.Params.Year}}</output></label>
<input type="range" id="year" name="year" min="{{.Years.Min}}" max="{{.Years.Max}}" value="{{.Params.Year}}"
  oninput="document.getElementById('year-out').value=this.value">
<h3>Tabela</h3>
<label><input type="checkbox" name="table" value="1"{{if .Params.ShowTable}} checked{{end}}> Mostrar tabela de dados</label>
<h3>Classificação</h3>
<label for="label">Escolha a classificação da ocorrência</label>
<input type="hidden" name="label" value="">
<select id="label" name="label" multiple>
{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
{{end}}</select>
<button type="submit">Aplicar</button>
</form>
<p class="note">A base de dados de ocorrências aeronáuticas é gerenciada pelo <strong><em>Centro de Investigação e Prevenção de Acidentes Aeronáuticos (CENIPA)</em></strong>.</p>
<p class="dim">{{.DatasetRows}} registros · carregado em {{fmtDate .DatasetLoaded}} · {{.DatasetSum}}</p>
</aside>
<main>
<h1>{{.Title}}</h1>
<p class="caption">Estão sendo exibidas as ocorrências classificadas como <strong>{{join .View.Labels ", "}}</strong>
para o ano de <strong>{{.View.Year}}</strong>.</p>

{{if .Params.ShowTable}}
<table id="occurrences">
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .TableRows}}<tr>{{range .}}<td>{{cell .}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{end}}

<h2 class="sub">Mapa de ocorrências</h2>
{{if .View.SkippedPoints}}<p class="dim">{{.View.SkippedPoints}} ocorrências sem coordenadas válidas não aparecem no mapa.</p>{{end}}
<div id="map" data-points="{{.PointsURL}}"></div>
</main>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script>
(function(){
  var el = document.getElementById('map');
  var map = L.map(el).setView([-14.2, -51.9], 4);
  L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
    maxZoom: 18, attribution: '&copy; OpenStreetMap'
  }).addTo(map);
  fetch(el.dataset.points).then(function(r){ return r.json(); }).then(function(fc){
    var layer = L.geoJSON(fc, {
      pointToLayer: function(f, ll){ return L.circleMarker(ll, {radius: 5, color: '#d1242f'}); },
      onEachFeature: function(f, l){
        var p = f.properties, box = document.createElement('div');
        [p.classificacao, p.tipo, p.cidade, p.data].forEach(function(s){
          var line = document.createElement('div'); line.textContent = s; box.appendChild(line);
        });
        box.firstChild.style.fontWeight = '600';
        l.bindPopup(box);
      }
    }).addTo(map);
    if (fc.features.length) { map.fitBounds(layer.getBounds(), {maxZoom: 8}); }
  });
})();
</script>
{{end}}
`
