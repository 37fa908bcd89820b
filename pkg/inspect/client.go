package inspect

// clientScript makes /frame.html interactive: data-target elements and the
// search input post to /navigate, and the page reloads whenever the websocket
// delivers a frame newer than the one it shows.
const clientScript = `
(function() {
    'use strict';

    var seq = Number(document.body.dataset.seq || 0);

    function navigate(path) {
        fetch('/navigate', {
            method: 'POST',
            headers: {'Content-Type': 'application/json'},
            body: JSON.stringify({path: path})
        });
    }

    document.addEventListener('click', function(e) {
        var el = e.target.closest('[data-target]');
        if (!el) {
            return;
        }
        e.preventDefault();
        navigate(el.dataset.target);
    });

    var search = document.querySelector('.searchbar input');
    if (search) {
        search.addEventListener('keydown', function(e) {
            if (e.key === 'Enter' && search.value.trim() !== '') {
                navigate(search.value.trim());
            }
        });
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/ws');
        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            if (msg.type === 'frame' && msg.frame && msg.frame.seq > seq) {
                location.reload();
            }
        };
        ws.onclose = function() {
            setTimeout(connect, 1000);
        };
    }
    connect();
})();
`
